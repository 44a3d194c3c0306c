// Package block defines the fixed-size unit every transform operates on.
package block

// Size is the number of bytes in a Block.
const Size = 8

// Block is a single unit of the stream. It is a value type: copies never alias.
type Block [Size]byte

// Count returns the number of whole and partial blocks needed to hold length bytes.
func Count(length int) int {
	return (length + Size - 1) / Size
}

// Split copies data into consecutive blocks.
// When extra is true, one more block is appended after the last (possibly partial) block
// if data ends exactly on a block boundary, so that the final block always has room for
// at least one trailing byte. Unused bytes of the final block are zero.
func Split(data []byte, extra bool) []Block {
	n := Count(len(data))
	if extra && len(data)%Size == 0 {
		n++
	}

	blocks := make([]Block, n)

	for i := range blocks {
		lo := i * Size
		if lo >= len(data) {
			break
		}

		copy(blocks[i][:], data[lo:min(lo+Size, len(data))])
	}

	return blocks
}

// Append appends the contents of blocks to dst in order and returns the extended slice.
func Append(dst []byte, blocks []Block) []byte {
	for i := range blocks {
		dst = append(dst, blocks[i][:]...)
	}

	return dst
}
