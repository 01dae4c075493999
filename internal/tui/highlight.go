package tui

import (
	"bytes"
	"os"
	"strings"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
)

const defaultChromaStyle = "dracula"

// highlightCode renders code for a 256-color terminal. It returns code
// unchanged when NO_COLOR is set or highlighting fails.
func highlightCode(code, lang, styleName string) string {
	if code == "" || os.Getenv("NO_COLOR") != "" {
		return code
	}

	lexer := resolveLexer(code, lang)
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	if styleName == "" {
		styleName = defaultChromaStyle
	}
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	var buf bytes.Buffer
	if err := formatters.TTY256.Format(&buf, style, iterator); err != nil {
		return code
	}

	return strings.TrimSuffix(buf.String(), "\n")
}

func resolveLexer(code, lang string) chroma.Lexer {
	lang = strings.ToLower(strings.TrimSpace(lang))
	var lexer chroma.Lexer
	if lang != "" {
		lexer = lexers.Get(lang)
	}
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}
