package buffer

// Buffer is a growable byte sequence with a hard upper bound. Appending is amortized by the
// underlying slice growth, yet the buffer never holds more than maxSize bytes.
type Buffer struct {
	memory  []byte
	maxSize int
}

func New(initialSize, maxSize int) *Buffer {
	if initialSize > maxSize {
		initialSize = maxSize
	}

	return &Buffer{
		memory:  make([]byte, 0, initialSize),
		maxSize: maxSize,
	}
}

// Append writes data, checking whether the new amount of elements (bytes) doesn't exceed the
// limit, otherwise discarding the data and returning false.
func (b *Buffer) Append(elements []byte) (ok bool) {
	if len(b.memory)+len(elements) > b.maxSize {
		return false
	}

	b.memory = append(b.memory, elements...)
	return true
}

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int {
	return len(b.memory)
}

// Room returns how many bytes can still be appended.
func (b *Buffer) Room() int {
	return b.maxSize - len(b.memory)
}

// Full reports whether the limit is reached.
func (b *Buffer) Full() bool {
	return b.Room() <= 0
}

// Since returns the data starting at the offset, clamped to the buffer bounds.
func (b *Buffer) Since(offset int) []byte {
	if offset < 0 {
		offset = 0
	} else if offset > len(b.memory) {
		offset = len(b.memory)
	}

	return b.memory[offset:]
}

// Trunc keeps only the first n bytes.
func (b *Buffer) Trunc(n int) {
	if n < len(b.memory) {
		b.memory = b.memory[:n]
	}
}

// Bytes returns the data held. The slice is valid until the next Clear.
func (b *Buffer) Bytes() []byte {
	return b.memory
}

// Clear just resets the pointers, so old values may be overridden by new ones.
func (b *Buffer) Clear() {
	b.memory = b.memory[:0]
}
