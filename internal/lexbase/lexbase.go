// Package lexbase holds the character classification and table matching
// helpers shared by the indenter, the rewriter and the enhancer.
package lexbase

import (
	"strings"

	"brace/internal/token"
)

// IsDigit reports an ASCII decimal digit.
func IsDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

// IsHexDigit reports an ASCII hexadecimal digit.
func IsHexDigit(ch byte) bool {
	return IsDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// IsWhite reports a blank or tab.
func IsWhite(ch byte) bool { return ch == ' ' || ch == '\t' }

// IsLegalNameChar reports whether ch may appear inside an identifier.
// Bytes above 0x7f are accepted so UTF-8 identifiers stay whole.
func IsLegalNameChar(ch byte) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', IsDigit(ch):
		return true
	case ch == '_' || ch == '$':
		return true
	case ch >= 0x80:
		return true
	}
	return false
}

// IsCharPotentialHeader reports whether a keyword may start at line[i]:
// a name character that is not a digit and not preceded by a name character.
func IsCharPotentialHeader(line string, i int) bool {
	if i < 0 || i >= len(line) {
		return false
	}
	ch := line[i]
	if ch == '@' {
		return i+1 < len(line) && IsLegalNameChar(line[i+1])
	}
	if !IsLegalNameChar(ch) || IsDigit(ch) {
		return false
	}
	return i == 0 || !IsLegalNameChar(line[i-1])
}

// IsCharPotentialOperator reports whether an operator may start with ch.
func IsCharPotentialOperator(ch byte) bool {
	if ch < 0x21 || ch > 0x7e || IsLegalNameChar(ch) {
		return false
	}
	switch ch {
	case '{', '}', '(', ')', '[', ']', ';', ',', '#', '\\', '\'', '"', '`', '@':
		return false
	}
	return true
}

// IsDigitSeparator reports a C++14 digit separator: a quote inside a number.
func IsDigitSeparator(line string, i int) bool {
	if i <= 0 || i+1 >= len(line) || line[i] != '\'' {
		return false
	}
	if !IsHexDigit(line[i-1]) || !IsHexDigit(line[i+1]) {
		return false
	}
	start := i - 1
	for start > 0 && (IsLegalNameChar(line[start-1]) || line[start-1] == '\'') {
		start--
	}
	return IsDigit(line[start])
}

// FindKeyword reports whether word appears at line[i] as a whole word.
func FindKeyword(line string, i int, word string) bool {
	if word == "" || i < 0 || !strings.HasPrefix(line[i:], word) {
		return false
	}
	end := i + len(word)
	if end < len(line) && IsLegalNameChar(line[end]) {
		return false
	}
	return i == 0 || !IsLegalNameChar(line[i-1])
}

// FindHeader returns the longest table entry matching at line[i] as a whole
// word, or token.None. Member accesses (".catch(") and scoped names
// ("default::") are not headers.
func FindHeader(line string, i int, table []token.Kind) token.Kind {
	if !IsCharPotentialHeader(line, i) {
		return token.None
	}
	if i > 0 && line[i-1] == '.' {
		return token.None
	}
	for _, k := range table {
		text := k.Text()
		if !FindKeyword(line, i, text) {
			continue
		}
		end := i + len(text)
		if strings.HasPrefix(line[end:], "::") {
			continue
		}
		return k
	}
	return token.None
}

// FindOperator returns the longest table entry starting at line[i].
// The table must be ordered longest first.
func FindOperator(line string, i int, table []token.Kind) token.Kind {
	if i < 0 || i >= len(line) || !IsCharPotentialOperator(line[i]) {
		return token.None
	}
	rest := line[i:]
	for _, k := range table {
		if strings.HasPrefix(rest, k.Text()) {
			return k
		}
	}
	return token.None
}

// CurrentWord returns the identifier starting at line[i], or "".
func CurrentWord(line string, i int) string {
	if i < 0 || i >= len(line) {
		return ""
	}
	end := i
	if line[end] == '@' {
		end++
	}
	for end < len(line) && IsLegalNameChar(line[end]) {
		end++
	}
	if end == i || (end == i+1 && line[i] == '@') {
		return ""
	}
	return line[i:end]
}

// PeekNextChar returns the first non-blank byte after line[i], or ' '.
func PeekNextChar(line string, i int) byte {
	for j := i + 1; j < len(line); j++ {
		if !IsWhite(line[j]) {
			return line[j]
		}
	}
	return ' '
}

// LeadingColumns measures leading whitespace in columns, expanding tabs.
func LeadingColumns(line string, tabLength int) int {
	if tabLength <= 0 {
		tabLength = 4
	}
	col := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			col++
		case '\t':
			col += tabLength - col%tabLength
		default:
			return col
		}
	}
	return col
}

// Sum adds up the byte values of all non-whitespace bytes.
func Sum(s string) int64 {
	var n int64
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\r', '\n', '\f', '\v':
			continue
		}
		n += int64(s[i])
	}
	return n
}

// QuoteEnd returns the index just past the quote opening at line[i] and
// whether it closed on this line. Backslash escapes the next byte.
func QuoteEnd(line string, i int) (int, bool) {
	q := line[i]
	for j := i + 1; j < len(line); j++ {
		switch line[j] {
		case '\\':
			j++
		case q:
			return j + 1, true
		}
	}
	return len(line), false
}

// VerbatimEnd scans a C# verbatim string body starting at i, where a
// doubled quote is an escaped quote.
func VerbatimEnd(line string, i int) (int, bool) {
	for j := i; j < len(line); j++ {
		if line[j] != '"' {
			continue
		}
		if j+1 < len(line) && line[j+1] == '"' {
			j++
			continue
		}
		return j + 1, true
	}
	return len(line), false
}

var rawPrefixes = map[string]bool{"R": true, "u8R": true, "LR": true, "uR": true, "UR": true}

// RawString recognizes a C++ raw string literal whose prefix word ends at
// line[i] (the 'R'). It returns the closing sequence and the index of the
// first body byte, or "" when line[i] does not start one.
func RawString(line string, wordStart, i int) (string, int) {
	if i+1 >= len(line) || line[i+1] != '"' || !rawPrefixes[line[wordStart:i+1]] {
		return "", 0
	}
	open := strings.IndexByte(line[i+2:], '(')
	if open < 0 || open > 16 {
		return "", 0
	}
	delim := line[i+2 : i+2+open]
	if strings.ContainsAny(delim, " \t\\)") {
		return "", 0
	}
	return ")" + delim + "\"", i + 3 + open
}

// RegexEnd returns the index past a JS regular expression literal opening
// at line[i], flags included.
func RegexEnd(line string, i int) (int, bool) {
	inClass := false
	for j := i + 1; j < len(line); j++ {
		switch c := line[j]; {
		case c == '\\':
			j++
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case c == '/' && !inClass:
			j++
			for j < len(line) && IsLegalNameChar(line[j]) {
				j++
			}
			return j, true
		}
	}
	return len(line), false
}

// NumberEnd returns the index past a numeric literal starting at line[i].
func NumberEnd(line string, i int) int {
	j := i
	for j < len(line) {
		c := line[j]
		switch {
		case IsLegalNameChar(c) || c == '.':
			if (c == 'e' || c == 'E' || c == 'p' || c == 'P') && j+1 < len(line) &&
				(line[j+1] == '+' || line[j+1] == '-') && !strings.HasPrefix(line[i:], "0x") {
				j += 2
				continue
			}
			j++
		case c == '\'' && IsDigitSeparator(line, j):
			j++
		default:
			return j
		}
	}
	return j
}
