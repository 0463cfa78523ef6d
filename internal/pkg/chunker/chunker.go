package chunker

import "fmt"

const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
)

// Chunker splits plain text into overlapping fixed-size passages with a
// sliding character window. Consecutive passages share exactly `overlap`
// characters; the final passage may be shorter than `size`.
type Chunker struct {
	size    int
	overlap int
}

// New validates the window parameters up front. A step of size-overlap <= 0
// would never advance the window, so it is a configuration error rather than
// something the loop has to defend against.
func New(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 {
		return nil, fmt.Errorf("chunk overlap must be non-negative, got %d", overlap)
	}
	if overlap >= size {
		return nil, fmt.Errorf("chunk overlap (%d) must be smaller than chunk size (%d)", overlap, size)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Default returns a chunker with the standard 1000/200 window.
func Default() *Chunker {
	c, _ := New(DefaultChunkSize, DefaultOverlap)
	return c
}

// Chunk derives the passage sequence from scratch on every call; identical
// input always yields identical output. Size and overlap count characters,
// not bytes, so multi-byte text never splits mid-rune. Whitespace-only
// passages are legal results and are filtered by callers before embedding.
func (c *Chunker) Chunk(text string) []string {
	if len(text) == 0 {
		return nil
	}

	runes := []rune(text)
	step := c.size - c.overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// Size returns the configured window size.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the configured window overlap.
func (c *Chunker) Overlap() int { return c.overlap }
