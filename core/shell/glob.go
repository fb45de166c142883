package shell

import (
	"strings"

	"github.com/spf13/afero"
)

// expandWildcards replaces every unquoted token containing a * with
// its pathname matches, in lexical order. A pattern that matches
// nothing, or that cannot be evaluated, passes through literally.
// Runs before the redirection scan so redirection targets may come
// from an expansion too.
func expandWildcards(fs afero.Fs, args []token) []token {
	out := make([]token, 0, len(args))

	for _, tok := range args {
		if tok.Quoted || !strings.Contains(tok.Text, "*") {
			out = append(out, tok)
			continue
		}

		matches, err := afero.Glob(fs, tok.Text)
		if err != nil || len(matches) == 0 {
			out = append(out, tok)
			continue
		}

		for _, match := range matches {
			out = append(out, token{Text: match})
		}
	}

	return out
}
