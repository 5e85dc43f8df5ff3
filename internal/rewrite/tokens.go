package rewrite

import (
	"strings"

	"brace/internal/lexbase"
	"brace/internal/token"
)

type tkind uint8

const (
	tNone tkind = iota
	tWord
	tNumber
	tString
	tOp
	tOpen  // ( [
	tClose // ) ]
	tLBrace
	tRBrace
	tSemi
	tComma
	tComment     // block comment, possibly still open
	tLineComment // runs to the end of the line
)

// role is what a token means for spacing, decided by annotate.
type role uint8

const (
	roleNone role = iota
	roleBinary
	roleUnary
	rolePointer
	roleAngle
	roleSelector
	roleMethodPrefix
	roleReturnType
	roleParamType
	roleHeaderParen
	roleCallParen
	roleIndex
	roleForSemi
)

type tok struct {
	kind tkind
	text string
	op   token.Kind
	ws   string // whitespace in front of the token as found
	role role

	joined bool // pulled up from the following input line
	added  bool // inserted by a brace edit
	block  bool // brace of a block (not an initializer)
	runIn  bool // opening brace with its first statement run in
	kept   bool // part of a one-line block kept as is
	closes bool // closing brace that ends a header block
	lead   bool // started its own input line before an edit merged it

	endsHeader bool // completes a header
}

func (t tok) significant() bool {
	return t.kind != tNone && t.kind != tComment && t.kind != tLineComment
}

func (t tok) isWord(w string) bool { return t.kind == tWord && t.text == w }

func (t tok) isOp(k token.Kind) bool { return t.kind == tOp && t.op == k }

// lexState is the formatter's own lexical carry between lines.
type lexState struct {
	comment  bool
	raw      string // closing of an open C++ raw string
	quote    byte   // '`' template literal or '"' verbatim string
	verbatim bool
	preproc  bool // directive continued with a backslash
	off      bool // inside *INDENT-OFF*
}

func (l *lexState) inLiteral() bool { return l.quote != 0 || l.raw != "" }

// tokenize splits a code line. prev is the last significant token before
// the line, used to tell a JS regex from a division.
func (f *Formatter) tokenize(line string, prev tok) []tok {
	var toks []tok
	i := 0
	for i < len(line) {
		j := i
		for j < len(line) && lexbase.IsWhite(line[j]) {
			j++
		}
		if j >= len(line) {
			break
		}
		ws := line[i:j]
		i = j
		t, end := f.nextToken(line, i, prev)
		t.ws = ws
		toks = append(toks, t)
		if t.significant() {
			prev = t
		}
		i = end
	}
	return toks
}

func (f *Formatter) nextToken(line string, i int, prev tok) (tok, int) {
	ch := line[i]
	switch {
	case strings.HasPrefix(line[i:], "//"):
		return tok{kind: tLineComment, text: line[i:]}, len(line)
	case strings.HasPrefix(line[i:], "/*"):
		end := strings.Index(line[i+2:], "*/")
		if end < 0 {
			f.lex.comment = true
			return tok{kind: tComment, text: line[i:]}, len(line)
		}
		end += i + 4
		return tok{kind: tComment, text: line[i:end]}, end
	case ch == '"' || ch == '`' || ch == '\'' && !lexbase.IsDigitSeparator(line, i):
		end, closed := lexbase.QuoteEnd(line, i)
		if !closed && ch == '`' {
			f.lex.quote = '`'
		}
		return tok{kind: tString, text: line[i:end]}, end
	case ch == '@' && f.g.IsSharpStyle() && (strings.HasPrefix(line[i:], `@"`) || strings.HasPrefix(line[i:], `@$"`)):
		j := i + 1
		if line[j] == '$' {
			j++
		}
		end, closed := lexbase.VerbatimEnd(line, j+1)
		if !closed {
			f.lex.quote, f.lex.verbatim = '"', true
		}
		return tok{kind: tString, text: line[i:end]}, end
	case ch == '/' && f.g.IsJSStyle() && regexAllowed(prev):
		end, _ := lexbase.RegexEnd(line, i)
		return tok{kind: tString, text: line[i:end]}, end
	case lexbase.IsDigit(ch) || ch == '.' && i+1 < len(line) && lexbase.IsDigit(line[i+1]):
		end := lexbase.NumberEnd(line, i)
		return tok{kind: tNumber, text: line[i:end]}, end
	case lexbase.IsCharPotentialHeader(line, i):
		w := lexbase.CurrentWord(line, i)
		end := i + len(w)
		if f.g.IsCStyle() && w[len(w)-1] == 'R' {
			if closing, body := lexbase.RawString(line, i, end-1); closing != "" {
				if k := strings.Index(line[body:], closing); k >= 0 {
					end = body + k + len(closing)
				} else {
					f.lex.raw = closing
					end = len(line)
				}
				return tok{kind: tString, text: line[i:end]}, end
			}
		}
		k, _ := token.Lookup(w)
		return tok{kind: tWord, text: w, op: k}, end
	}
	switch ch {
	case '(', '[':
		return tok{kind: tOpen, text: line[i : i+1]}, i + 1
	case ')', ']':
		return tok{kind: tClose, text: line[i : i+1]}, i + 1
	case '{':
		return tok{kind: tLBrace, text: "{"}, i + 1
	case '}':
		return tok{kind: tRBrace, text: "}"}, i + 1
	case ';':
		return tok{kind: tSemi, text: ";"}, i + 1
	case ',':
		return tok{kind: tComma, text: ","}, i + 1
	}
	if k := lexbase.FindOperator(line, i, f.ops); k != token.None {
		n := len(k.Text())
		return tok{kind: tOp, text: line[i : i+n], op: k}, i + n
	}
	return tok{kind: tOp, text: line[i : i+1]}, i + 1
}

var regexWords = map[string]bool{
	"return": true, "typeof": true, "case": true, "in": true, "of": true,
	"delete": true, "void": true, "throw": true, "new": true, "yield": true,
}

func regexAllowed(prev tok) bool {
	switch prev.kind {
	case tWord:
		return regexWords[prev.text]
	case tNumber, tString, tClose:
		return false
	}
	return true
}

func nextSig(toks []tok, i int) (tok, int) {
	for j := i + 1; j < len(toks); j++ {
		if toks[j].significant() {
			return toks[j], j
		}
	}
	return tok{}, -1
}

func prevSig(toks []tok, i int) (tok, int) {
	for j := i - 1; j >= 0; j-- {
		if toks[j].significant() {
			return toks[j], j
		}
	}
	return tok{}, -1
}

// lastSig returns the last significant token and its index.
func lastSig(toks []tok) (tok, int) { return prevSig(toks, len(toks)) }

// onlyComments reports whether toks holds no code.
func onlyComments(toks []tok) bool {
	_, i := lastSig(toks)
	return i < 0
}
