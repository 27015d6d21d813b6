package buffer

import (
	"strings"
	"unicode"
)

// TextBuffer accumulates the article's plain text and tracks its word count.
type TextBuffer struct {
	parts    []string
	words    int
	midWord  bool
	byteSize int
}

// New creates a new TextBuffer.
func New() *TextBuffer {
	return &TextBuffer{
		parts: make([]string, 0),
	}
}

// Write appends text to the buffer.
// Words split across consecutive writes are counted once.
func (tb *TextBuffer) Write(text string) {
	if text == "" {
		return
	}
	tb.parts = append(tb.parts, text)
	tb.byteSize += len(text)
	for _, r := range text {
		if unicode.IsSpace(r) {
			tb.midWord = false
			continue
		}
		if !tb.midWord {
			tb.words++
			tb.midWord = true
		}
	}
}

// Words returns the number of whitespace-separated words written so far.
func (tb *TextBuffer) Words() int {
	return tb.words
}

// ByteOffset returns the current byte offset (total string length).
func (tb *TextBuffer) ByteOffset() int {
	return tb.byteSize
}

// String returns the accumulated text.
func (tb *TextBuffer) String() string {
	if len(tb.parts) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(tb.byteSize)
	for _, p := range tb.parts {
		b.WriteString(p)
	}
	return b.String()
}

// Reset clears the buffer.
func (tb *TextBuffer) Reset() {
	tb.parts = tb.parts[:0]
	tb.words = 0
	tb.midWord = false
	tb.byteSize = 0
}
