package source

// PeekStream is a scoped lookahead over an Iterator. Release restores the
// read position; call it with defer right after NewPeekStream.
type PeekStream struct {
	it       Iterator
	released bool
}

// NewPeekStream starts a lookahead.
func NewPeekStream(it Iterator) *PeekStream {
	return &PeekStream{it: it}
}

// HasMoreLines reports whether another line can be peeked.
func (p *PeekStream) HasMoreLines() bool {
	if p.released {
		return false
	}
	return p.it.HasMoreLines()
}

// PeekNextLine returns the next line without consuming it.
func (p *PeekStream) PeekNextLine() string {
	if p.released {
		return ""
	}
	return p.it.PeekNextLine()
}

// Release ends the lookahead. Calling it twice is harmless.
func (p *PeekStream) Release() {
	if p.released {
		return
	}
	p.released = true
	p.it.PeekReset()
}
