package pipeline

import (
	"context"
	"time"

	"github.com/idelchi/godes/internal/block"
	"github.com/idelchi/godes/internal/encryption"
)

// cancelCheckInterval is how many blocks a worker transforms between context checks.
const cancelCheckInterval = 4096

// Transformer is the block primitive. Implementations must be safe for concurrent use.
type Transformer interface {
	Transform(dst, src *block.Block, mode encryption.Mode) error
}

// tail is handed only to the worker that owns the last block of a stream being encrypted.
type tail struct {
	// length is the byte length of the whole plaintext stream.
	length int
}

// worker transforms one contiguous range of the stream.
// Its input slice is exclusively its own for the duration of the run.
type worker struct {
	index  int
	rng    Range
	input  []block.Block
	cipher Transformer
	mode   encryption.Mode
	tail   *tail
}

// output is what a worker hands over to the reassembler once it is done.
type output struct {
	index   int
	blocks  []block.Block
	elapsed time.Duration
}

func (w *worker) run(ctx context.Context) (output, error) {
	start := time.Now()

	out := make([]block.Block, len(w.input))

	for i := range w.input {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return output{}, err
			}
		}

		src := w.input[i]

		if w.tail != nil && i == len(w.input)-1 {
			encryption.Pad(&src, w.tail.length)
		}

		if err := w.cipher.Transform(&out[i], &src, w.mode); err != nil {
			return output{}, &TransformError{Worker: w.index, Block: w.rng.Start + i, Err: err}
		}
	}

	return output{index: w.index, blocks: out, elapsed: time.Since(start)}, nil
}
