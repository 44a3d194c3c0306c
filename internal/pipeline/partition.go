package pipeline

import "fmt"

// Range is a half-open interval [Start, End) of block indices.
type Range struct {
	Start int
	End   int
}

// Len returns the number of blocks in the range.
func (r Range) Len() int { return r.End - r.Start }

// Contains reports whether index lies within the range.
func (r Range) Contains(index int) bool { return index >= r.Start && index < r.End }

// Plan assigns one contiguous range of blocks to each worker.
// Ranges are disjoint, ordered by worker index, and together cover [0, Blocks).
type Plan struct {
	Blocks int
	Ranges []Range
}

// Partition splits n blocks across w workers. Every worker gets n/w blocks and the last one
// also absorbs the remainder. With n < w the leading workers receive empty ranges.
func Partition(n, w int) (Plan, error) {
	if w < 1 {
		return Plan{}, fmt.Errorf("%w: got %d", ErrInvalidWorkerCount, w)
	}

	if n < 0 {
		return Plan{}, fmt.Errorf("negative block count %d", n)
	}

	chunk := n / w
	ranges := make([]Range, w)

	for i := range ranges {
		ranges[i] = Range{Start: i * chunk, End: (i + 1) * chunk}
	}

	ranges[w-1].End = n

	return Plan{Blocks: n, Ranges: ranges}, nil
}

// Workers returns the number of ranges in the plan.
func (p Plan) Workers() int { return len(p.Ranges) }

// TailOwner returns the index of the worker whose range holds the last block,
// or -1 when the plan covers no blocks.
func (p Plan) TailOwner() int {
	if p.Blocks == 0 {
		return -1
	}

	for i := len(p.Ranges) - 1; i >= 0; i-- {
		if p.Ranges[i].Contains(p.Blocks - 1) {
			return i
		}
	}

	return -1
}
