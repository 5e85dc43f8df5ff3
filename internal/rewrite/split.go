package rewrite

import (
	"github.com/mattn/go-runewidth"

	"brace/internal/token"
)

// Split candidates, weakest first.
const (
	cutNone = iota
	cutSpace
	cutParen
	cutComma
	cutLogical
	cutSemi
)

// split renders a segment, breaking it into pieces no wider than the
// configured maximum where a candidate allows. Pieces after the first
// continue the statement. A segment without a fitting candidate is left
// long.
func (f *Formatter) split(seg []tok, nopad bool) []string {
	max := f.opts.MaxCodeLength
	text := f.render(seg, nopad)
	if max <= 0 || nopad || runewidth.StringWidth(text) <= max {
		return []string{text}
	}
	var out []string
	for {
		cut := f.cutPoint(seg, max, nopad)
		if cut <= 0 {
			return append(out, f.render(seg, nopad))
		}
		out = append(out, f.render(seg[:cut], nopad))
		seg = seg[cut:]
		if rest := f.render(seg, nopad); runewidth.StringWidth(rest) <= max {
			return append(out, rest)
		}
	}
}

// cutPoint returns the index of the token starting the next piece, or 0.
// The latest candidate of the strongest kind whose prefix fits wins.
func (f *Formatter) cutPoint(seg []tok, max int, nopad bool) int {
	best, bestKind := 0, cutNone
	width, depth := 0, 0
	for k := 0; k < len(seg); k++ {
		t := seg[k]
		if k > 0 {
			gap := f.gap(seg[k-1], t, nopad)
			if width > max {
				break
			}
			if kind := f.cutKind(seg, k, depth, gap); kind >= bestKind && kind != cutNone {
				best, bestKind = k, kind
			}
			width += runewidth.StringWidth(gap)
		}
		width += runewidth.StringWidth(t.text)
		switch t.kind {
		case tOpen:
			depth++
		case tClose:
			depth--
		}
	}
	return best
}

// cutKind classifies a cut before seg[k]. depth is the paren depth of the
// tokens before it.
func (f *Formatter) cutKind(seg []tok, k, depth int, gap string) int {
	a, b := seg[k-1], seg[k]
	switch b.kind {
	case tSemi, tComma, tClose, tLineComment:
		return cutNone
	}
	if a.kind == tLineComment {
		return cutNone
	}
	logical := func(t tok) bool { return t.isOp(token.AndAnd) || t.isOp(token.OrOr) }
	switch {
	case a.kind == tSemi && depth == 0:
		return cutSemi
	case depth <= 1 && f.opts.BreakAfterLogical && logical(a),
		depth <= 1 && !f.opts.BreakAfterLogical && logical(b):
		return cutLogical
	case a.kind == tComma && depth <= 1:
		return cutComma
	case a.kind == tOpen && a.text == "(":
		return cutParen
	case gap != "":
		return cutSpace
	}
	return cutNone
}
