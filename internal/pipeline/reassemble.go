package pipeline

import (
	"fmt"

	"github.com/idelchi/godes/internal/block"
	"github.com/idelchi/godes/internal/encryption"
)

// reassemble concatenates the worker outputs in partition order.
// outputs must be indexed by worker. When mode is Decrypt the padding of the very last
// block is removed according to policy; every other block is emitted whole.
func reassemble(outputs []output, mode encryption.Mode, policy encryption.Policy) ([]byte, error) {
	total := 0
	last := -1

	for i := range outputs {
		total += len(outputs[i].blocks)

		if len(outputs[i].blocks) > 0 {
			last = i
		}
	}

	result := make([]byte, 0, total*block.Size)

	for i := range outputs {
		blocks := outputs[i].blocks

		if mode != encryption.Decrypt || i != last {
			result = block.Append(result, blocks)

			continue
		}

		final := blocks[len(blocks)-1]
		result = block.Append(result, blocks[:len(blocks)-1])

		trimmed, err := policy.Unpad(final)
		if err != nil {
			return nil, fmt.Errorf("removing padding: %w", err)
		}

		result = append(result, trimmed...)
	}

	return result, nil
}
