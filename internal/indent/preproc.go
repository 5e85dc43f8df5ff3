package indent

import (
	"strings"

	"brace/internal/lexbase"
)

// preprocessor handles a directive line. #if branches are indented from
// the same starting state: every #else restarts from the state at #if and
// #endif keeps the end of the first branch.
func (in *Indenter) preprocessor(trimmed string) (Indent, bool) {
	s := &in.s
	dir, arg := directive(trimmed)
	guard := in.guardPending
	in.guardPending = false

	var ind Indent
	switch dir {
	case "if", "ifdef", "ifndef":
		ind = in.ppIndent(dir, in.ppDepth)
		f := ppFrame{waiting: s.clone()}
		if dir == "ifndef" && !in.codeSeen && len(in.pp) == 0 && arg != "" {
			f.guardName = arg
			in.guardPending = true
		}
		in.pp = append(in.pp, f)
		in.ppDepth++
	case "else", "elif", "elifdef", "elifndef":
		if n := len(in.pp); n > 0 {
			f := &in.pp[n-1]
			if f.active == nil {
				kept := s.clone()
				f.active = &kept
			}
			in.s = f.waiting.clone()
			ind = in.ppIndent(dir, in.ppDepth-b2i(!f.guard))
		}
	case "endif":
		if n := len(in.pp); n > 0 {
			f := in.pp[n-1]
			if f.active != nil {
				in.s = *f.active
			}
			in.pp = in.pp[:n-1]
			if !f.guard {
				in.ppDepth--
			}
		}
		ind = in.ppIndent(dir, in.ppDepth)
	case "define":
		if n := len(in.pp); guard && n > 0 && in.pp[n-1].guardName == arg {
			in.pp[n-1].guard = true
			in.ppDepth--
		}
		ind = in.ppIndent(dir, in.ppDepth)
	default:
		ind = in.ppIndent(dir, in.ppDepth)
	}

	cont := strings.HasSuffix(trimmed, "\\")
	in.lex.preproc = cont
	in.lex.define = cont && dir == "define"
	in.lex.defineBase = ind
	in.lineIndent = ind
	in.directiveComments(trimmed)
	return ind, true
}

func (in *Indenter) ppIndent(dir string, depth int) Indent {
	o := in.opts
	switch {
	case isConditional(dir) && o.IndentPreprocCond:
		return in.base()
	case in.g.IsSharpStyle() && (dir == "region" || dir == "endregion" || dir == "pragma"):
		return in.base()
	case o.IndentPreprocBlock && len(in.s.scopes) == 0 && depth > 0:
		return Indent{Units: depth}
	}
	return Indent{}
}

func isConditional(dir string) bool {
	switch dir {
	case "if", "ifdef", "ifndef", "else", "elif", "elifdef", "elifndef", "endif":
		return true
	}
	return false
}

// preprocContinuation indents a line continued from a directive.
func (in *Indenter) preprocContinuation(text string) (Indent, bool) {
	trimmed := strings.TrimLeft(text, " \t")
	define := in.lex.define
	in.lex.preproc = strings.HasSuffix(trimmed, "\\")
	if !in.lex.preproc {
		in.lex.define = false
	}
	in.directiveComments(trimmed)
	if define && in.opts.IndentPreprocDef && trimmed != "" {
		return in.lex.defineBase.add(1), true
	}
	return Indent{}, false
}

// directiveComments tracks block comments and quotes inside directive text
// so a comment opened on a directive line is carried correctly.
func (in *Indenter) directiveComments(line string) {
	i := 0
	if in.lex.comment {
		end := strings.Index(line, "*/")
		if end < 0 {
			return
		}
		in.lex.comment = false
		i = end + 2
	}
	for ; i < len(line); i++ {
		switch line[i] {
		case '"', '\'':
			end, _ := lexbase.QuoteEnd(line, i)
			i = end - 1
		case '/':
			if i+1 >= len(line) {
				return
			}
			if line[i+1] == '/' {
				return
			}
			if line[i+1] == '*' {
				end := strings.Index(line[i+2:], "*/")
				if end < 0 {
					in.lex.comment = true
					in.lex.commentBase = in.lineIndent
					in.lex.commentCol = in.leadCols
					return
				}
				i += end + 3
			}
		}
	}
}

// directive splits "#  name arg ..." into name and first argument.
func directive(line string) (string, string) {
	i := skipWhite(line, 1)
	name := lexbase.CurrentWord(line, i)
	j := skipWhite(line, i+len(name))
	return name, lexbase.CurrentWord(line, j)
}
