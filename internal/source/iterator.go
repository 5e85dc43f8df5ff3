// Package source supplies logical lines to the formatting engines and
// handles the byte-level concerns around them: encodings, byte order marks
// and line endings.
package source

import "strings"

// Iterator is the line supply consumed by the engines.
//
// Peeking moves a separate cursor; PeekReset returns to the read position.
// While a peek is in progress HasMoreLines answers for the peek cursor.
type Iterator interface {
	// PeekStart is the stream offset where the current peek began.
	PeekStart() int
	// StreamLength is the total length of the stream in bytes.
	StreamLength() int
	HasMoreLines() bool
	// NextLine returns the next line. emptyLineWasDeleted tells the supply
	// that the previous empty line was dropped by the caller.
	NextLine(emptyLineWasDeleted bool) string
	PeekNextLine() string
	PeekReset()
	// Tell is the stream offset of the next unread line.
	Tell() int
}

// BufferIterator serves lines from an in-memory text.
type BufferIterator struct {
	lines     []string
	offsets   []int
	length    int
	pos       int
	peeking   bool
	peekPos   int
	peekStart int
	deleted   int
	lineEnd   LineEnd
	trailing  bool
}

// NewBufferIterator splits text on \r\n, \r or \n. A final line ending does
// not produce an extra empty line; TrailingNewline reports it instead.
func NewBufferIterator(text string) *BufferIterator {
	it := &BufferIterator{length: len(text), lineEnd: DetectLineEnd(text)}
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			it.push(text[start:i], start)
			start = i + 1
		case '\r':
			it.push(text[start:i], start)
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(text) {
		it.push(text[start:], start)
	} else if len(text) > 0 {
		it.trailing = true
	}
	return it
}

// NewLineIterator serves the given lines as-is.
func NewLineIterator(lines []string) *BufferIterator {
	text := strings.Join(lines, "\n")
	it := &BufferIterator{length: len(text), lineEnd: LineEndLinux}
	off := 0
	for _, l := range lines {
		it.push(l, off)
		off += len(l) + 1
	}
	return it
}

func (it *BufferIterator) push(line string, off int) {
	it.lines = append(it.lines, line)
	it.offsets = append(it.offsets, off)
}

func (it *BufferIterator) PeekStart() int { return it.peekStart }

func (it *BufferIterator) StreamLength() int { return it.length }

func (it *BufferIterator) HasMoreLines() bool {
	if it.peeking {
		return it.peekPos < len(it.lines)
	}
	return it.pos < len(it.lines)
}

func (it *BufferIterator) NextLine(emptyLineWasDeleted bool) string {
	it.peeking = false
	if emptyLineWasDeleted {
		it.deleted++
	}
	if it.pos >= len(it.lines) {
		return ""
	}
	line := it.lines[it.pos]
	it.pos++
	return line
}

func (it *BufferIterator) PeekNextLine() string {
	if !it.peeking {
		it.peeking = true
		it.peekPos = it.pos
		it.peekStart = it.Tell()
	}
	if it.peekPos >= len(it.lines) {
		return ""
	}
	line := it.lines[it.peekPos]
	it.peekPos++
	return line
}

func (it *BufferIterator) PeekReset() {
	it.peeking = false
	it.peekPos = it.pos
}

func (it *BufferIterator) Tell() int {
	if it.pos >= len(it.offsets) {
		return it.length
	}
	return it.offsets[it.pos]
}

// Lines is the number of lines in the stream.
func (it *BufferIterator) Lines() int { return len(it.lines) }

// Deleted counts empty lines the caller reported as dropped.
func (it *BufferIterator) Deleted() int { return it.deleted }

// LineEnd is the dominant line ending found in the input.
func (it *BufferIterator) LineEnd() LineEnd { return it.lineEnd }

// TrailingNewline reports whether the input ended with a line ending.
func (it *BufferIterator) TrailingNewline() bool { return it.trailing }
