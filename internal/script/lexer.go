package script

import (
	"strconv"
	"strings"
)

// lex tokenizes a single line of DSL source, stopping at an unescaped '#'
// comment marker. It returns a diagnostic (with no line number filled in —
// the caller stamps it) on the first unrecognized character.
func lex(line string) ([]token, *Diagnostic) {
	var toks []token

	runes := []rune(line)
	i := 0
	n := len(runes)

	for i < n {
		c := runes[i]

		if c == '#' {
			break // rest of line is a comment
		}
		if c == ' ' || c == '\t' || c == '\r' {
			i++
			continue
		}

		col := i + 1

		switch {
		case isDigit(c) || (c == '.' && i+1 < n && isDigit(runes[i+1])):
			start := i
			i++
			for i < n && isDigit(runes[i]) {
				i++
			}
			if i < n && runes[i] == '.' {
				i++
				for i < n && isDigit(runes[i]) {
					i++
				}
			}
			if i < n && (runes[i] == 'e' || runes[i] == 'E') {
				j := i + 1
				if j < n && (runes[j] == '+' || runes[j] == '-') {
					j++
				}
				if j < n && isDigit(runes[j]) {
					i = j
					for i < n && isDigit(runes[i]) {
						i++
					}
				}
			}
			text := string(runes[start:i])
			val, err := parseFloat(text)
			if err != nil {
				return nil, &Diagnostic{Message: "malformed number '" + text + "'"}
			}
			toks = append(toks, token{kind: tokNumber, text: text, num: val, column: col})

		case isIdentStart(c):
			start := i
			i++
			for i < n && isIdentPart(runes[i]) {
				i++
			}
			text := string(runes[start:i])
			toks = append(toks, token{kind: tokIdent, text: strings.ToUpper(text), column: col})

		case c == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", column: col})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", column: col})
			i++
		case c == ',':
			toks = append(toks, token{kind: tokComma, text: ",", column: col})
			i++
		case c == '+':
			toks = append(toks, token{kind: tokPlus, text: "+", column: col})
			i++
		case c == '-':
			toks = append(toks, token{kind: tokMinus, text: "-", column: col})
			i++
		case c == '*':
			toks = append(toks, token{kind: tokStar, text: "*", column: col})
			i++
		case c == '/':
			toks = append(toks, token{kind: tokSlash, text: "/", column: col})
			i++
		case c == '>':
			if i+1 < n && runes[i+1] == '=' {
				toks = append(toks, token{kind: tokGE, text: ">=", column: col})
				i += 2
			} else {
				toks = append(toks, token{kind: tokGT, text: ">", column: col})
				i++
			}
		case c == '<':
			if i+1 < n && runes[i+1] == '=' {
				toks = append(toks, token{kind: tokLE, text: "<=", column: col})
				i += 2
			} else {
				toks = append(toks, token{kind: tokLT, text: "<", column: col})
				i++
			}
		case c == '=':
			if i+1 < n && runes[i+1] == '=' {
				toks = append(toks, token{kind: tokEQ, text: "==", column: col})
				i += 2
			} else {
				toks = append(toks, token{kind: tokEQ, text: "=", column: col})
				i++
			}
		case c == '!':
			if i+1 < n && runes[i+1] == '=' {
				toks = append(toks, token{kind: tokNE, text: "!=", column: col})
				i += 2
			} else {
				return nil, &Diagnostic{Message: "unexpected character '!'"}
			}
		default:
			return nil, &Diagnostic{Message: "unexpected character '" + string(c) + "'"}
		}
	}

	toks = append(toks, token{kind: tokEOF, text: "", column: n + 1})
	return toks, nil
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || isDigit(c)
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}
