package rewrite

import "brace/internal/token"

// blockHeaders open the blocks break-blocks separates.
var blockHeaders = map[token.Kind]bool{
	token.If: true, token.For: true, token.While: true, token.Do: true, token.Switch: true,
	token.Try: true, token.Foreach: true, token.QForeach: true, token.Synchronized: true,
	token.Lock: true, token.Fixed: true, token.With: true, token.AtTry: true,
	token.AtSynchronized: true, token.AtAutoreleasepool: true,
	token.Else: true, token.Catch: true, token.Finally: true, token.AtCatch: true, token.AtFinally: true,
}

// layout breaks a logical line into output segments: braces are attached,
// broken or run in, one-line blocks and statements are split and headers
// are separated from their statements as configured. It advances the
// statement context and the brace stack over toks.
func (f *Formatter) layout(toks []tok) [][]tok {
	o := f.opts
	var segs [][]tok
	var cur []tok
	brk := func() {
		if len(cur) > 0 {
			segs = append(segs, cur)
			cur = nil
		}
	}
	keepUntil := -1
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		inKept := i <= keepUntil
		if t.lead && !inKept {
			brk()
		}
		switch t.kind {
		case tLBrace:
			fc := f.classify(toks, i)
			t.block = !fc.Array || fc.Enum
			kept := false
			if !inKept {
				if m := matchBrace(toks, i); m >= 0 && (fc.Empty || o.KeepOneLineBlocks || t.kept || fc.Array || fc.Enum) {
					keepUntil, kept = m, true
				}
			}
			place := placeKeep
			if !inKept && !kept {
				place = f.placement(fc)
			}
			if (place == placeBreak || place == placeRunIn) && !onlyComments(cur) {
				brk()
			}
			t.kept = inKept || kept
			t.runIn = place == placeRunIn
			f.pushBrace(braceEntry{fc: fc, header: f.ctx.afterHeader, outer: f.ctx})
			f.ctx = stmtCtx{}
			cur = append(cur, t)
			if !t.kept && !fc.Array && place != placeRunIn {
				if n, _ := nextSig(toks, i); n.kind != tNone {
					// a comment right after the brace stays with it
					for i+1 < len(toks) && !toks[i+1].significant() {
						i++
						cur = append(cur, toks[i])
					}
					brk()
				}
			}
			continue
		case tRBrace:
			e := f.popBrace()
			if !inKept && !e.fc.Array {
				brk()
			}
			t.kept = inKept
			t.op = e.header
			t.closes = e.fc.Command && blockHeaders[e.header] && e.header != token.Do
			f.closeBrace(e)
			cur = append(cur, t)
			if inKept && i != keepUntil || e.fc.Array {
				break
			}
			n, _ := nextSig(toks, i)
			switch {
			case n.kind == tNone, n.kind == tSemi, n.kind == tComma, n.kind == tClose:
			case closingHeader(n, e.header):
				if f.breakClosing(n.op, e.header) {
					brk()
				}
			case e.fc.typeBody() || e.fc.Enum:
				// } name;
			default:
				brk()
			}
		case tSemi:
			f.advance(t)
			cur = append(cur, t)
			if inKept && i != keepUntil || t.role == roleForSemi || o.KeepOneLineStatements {
				break
			}
			if n, _ := nextSig(toks, i); n.kind != tNone && n.kind != tRBrace {
				brk()
			}
		case tLineComment:
			cur = append(cur, t)
			brk()
		default:
			cur = append(cur, t)
			if !t.significant() {
				break
			}
			if !f.advance(t) {
				break
			}
			cur[len(cur)-1].endsHeader = true
			if inKept {
				break
			}
			n, _ := nextSig(toks, i)
			switch {
			case n.kind == tNone, n.kind == tLBrace, n.kind == tSemi:
			case t.op == token.Else && n.isWord("if"):
				if o.BreakElseIfs {
					brk()
				}
			case o.BreakOneLineHeaders:
				brk()
			}
		}
	}
	brk()
	return segs
}
