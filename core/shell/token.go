package shell

import "strings"

// token is one parsed argument. Quoted records whether any part of the
// token appeared inside double quotes; quoting strips a token of any
// special meaning downstream, so a quoted ">" is a literal argument.
type token struct {
	Text   string
	Quoted bool
}

// texts flattens tokens for callers that only need the strings.
func texts(tokens []token) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Text)
	}

	return out
}

// tokenize splits one input line into an argument vector. Space and
// tab outside quotes separate tokens, a double quote toggles quoting
// and is dropped from the token, and a quote still open at the end of
// the line closes with it. Comment lines, where the first character of
// the first token is '#', produce no tokens at all.
func tokenize(line string) []token {
	if strings.HasPrefix(strings.TrimLeft(line, " \t"), "#") {
		return nil
	}

	var tokens []token
	var b strings.Builder

	inQuote := false // scanning inside double quotes
	started := false // current token has at least begun, possibly empty
	quoted := false  // current token contains quoted text

	flush := func() {
		if started {
			tokens = append(tokens, token{Text: b.String(), Quoted: quoted})
			b.Reset()
			started = false
			quoted = false
		}
	}

	for _, r := range line {
		if inQuote {
			if r == '"' {
				// The closing quote ends the token.
				inQuote = false
				flush()
			} else {
				b.WriteRune(r)
			}
			continue
		}

		switch r {
		case ' ', '\t':
			flush()
		case '"':
			inQuote = true
			started = true
			quoted = true
		default:
			b.WriteRune(r)
			started = true
		}
	}

	// Quote state resets at end of line; an unterminated quote is not
	// an error, the token just closes here.
	flush()

	return tokens
}
