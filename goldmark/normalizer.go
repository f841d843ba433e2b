// Package goldmark provides a docnav.Normalizer that reduces HTML and
// Markdown snippets to plain display text using the goldmark parser.
package goldmark

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/fwojciec/docnav"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"
)

// Ensure Normalizer implements docnav.Normalizer at compile time.
var _ docnav.Normalizer = (*Normalizer)(nil)

var (
	tagRe        = regexp.MustCompile(`<[^<>]*>`)
	letterEscRe  = regexp.MustCompile(`\\[a-z]`)
	leadingSpace = regexp.MustCompile(`^\s*`)
)

// Normalizer strips HTML tags, stray escapes and Markdown markup.
// Normalizer is safe for concurrent use.
type Normalizer struct {
	parser parser.Parser
}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{parser: goldmark.New().Parser()}
}

// Normalize returns raw as plain text. It never fails: unbalanced angle
// brackets and malformed markup are kept as literal text.
func (n *Normalizer) Normalize(raw string) string {
	s := tagRe.ReplaceAllString(raw, "")
	s = letterEscRe.ReplaceAllString(s, "")
	s = leadingSpace.ReplaceAllString(s, " ")

	// Leading indentation would turn the snippet into a code block.
	src := []byte(strings.TrimSpace(s))
	if len(src) == 0 {
		return ""
	}

	doc := n.parser.Parse(text.NewReader(src))

	var buf bytes.Buffer
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if node.Type() == ast.TypeBlock {
			buf.WriteByte(' ')
		}
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := node.(type) {
		case *ast.Text:
			buf.Write(unescape(node.Segment.Value(src)))
			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(node.Value)
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			lines := node.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(src))
				buf.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(buf.String()), " ")
}

// unescape resolves backslash punctuation escapes and HTML entities.
func unescape(b []byte) []byte {
	b = util.UnescapePunctuations(b)
	if bytes.IndexByte(b, '&') < 0 {
		return b
	}
	return []byte(html.UnescapeString(string(b)))
}
