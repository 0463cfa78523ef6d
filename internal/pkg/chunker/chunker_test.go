package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsBadWindows(t *testing.T) {
	cases := []struct {
		name    string
		size    int
		overlap int
	}{
		{"zero size", 0, 0},
		{"negative size", -1, 0},
		{"negative overlap", 10, -1},
		{"overlap equals size", 10, 10},
		{"overlap exceeds size", 10, 15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.size, tc.overlap)
			assert.Error(t, err)
		})
	}
}

func TestChunk_CoversTextWithExactOverlap(t *testing.T) {
	c, err := New(100, 20)
	require.NoError(t, err)

	text := strings.Repeat("abcdefghij", 55) // 550 chars
	chunks := c.Chunk(text)
	require.NotEmpty(t, chunks)

	// Consecutive chunks share exactly `overlap` characters and the sequence
	// reconstructs the original text with no gaps.
	step := c.Size() - c.Overlap()
	pos := 0
	for i, chunk := range chunks {
		require.Equal(t, text[pos:pos+len(chunk)], chunk, "chunk %d content", i)
		if i < len(chunks)-1 {
			assert.Equal(t, c.Size(), len(chunk), "chunk %d length", i)
			assert.Equal(t, chunk[len(chunk)-c.Overlap():], chunks[i+1][:c.Overlap()], "overlap between chunks %d and %d", i, i+1)
		}
		pos += step
	}
}

func TestChunk_FinalChunkMayBeShort(t *testing.T) {
	c, err := New(100, 20)
	require.NoError(t, err)

	text := strings.Repeat("x", 150)
	chunks := c.Chunk(text)

	require.Len(t, chunks, 2)
	assert.Equal(t, 100, len(chunks[0]))
	assert.Equal(t, 70, len(chunks[1])) // [80:150]
}

func TestChunk_ShortTextYieldsSingleChunk(t *testing.T) {
	c := Default()

	chunks := c.Chunk("tiny")
	require.Len(t, chunks, 1)
	assert.Equal(t, "tiny", chunks[0])
}

func TestChunk_EmptyText(t *testing.T) {
	c := Default()
	assert.Empty(t, c.Chunk(""))
}

func TestChunk_Idempotent(t *testing.T) {
	c, err := New(50, 10)
	require.NoError(t, err)

	text := strings.Repeat("the quick brown fox ", 20)
	assert.Equal(t, c.Chunk(text), c.Chunk(text))
}

func TestChunk_WindowsCharactersNotBytes(t *testing.T) {
	c, err := New(10, 2)
	require.NoError(t, err)

	text := strings.Repeat("é", 20) // 20 chars, 40 bytes
	chunks := c.Chunk(text)

	// Starts at 0, 8, 16 in characters.
	require.Len(t, chunks, 3)
	assert.Equal(t, strings.Repeat("é", 10), chunks[0])
	assert.Equal(t, strings.Repeat("é", 10), chunks[1])
	assert.Equal(t, strings.Repeat("é", 4), chunks[2])
	for i, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk), "chunk %d", i)
	}
}

func TestChunk_MixedWidthRunesNeverSplitMidRune(t *testing.T) {
	c, err := New(5, 1)
	require.NoError(t, err)

	chunks := c.Chunk("héllo wörld, 日本語テキスト")
	require.NotEmpty(t, chunks)
	for i, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk), "chunk %d", i)
		assert.LessOrEqual(t, len([]rune(chunk)), 5, "chunk %d", i)
	}
}

func TestChunk_ZeroOverlap(t *testing.T) {
	c, err := New(4, 0)
	require.NoError(t, err)

	chunks := c.Chunk("aaaabbbbcccc")
	assert.Equal(t, []string{"aaaa", "bbbb", "cccc"}, chunks)
}
