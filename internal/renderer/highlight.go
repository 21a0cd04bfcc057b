package renderer

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark/ast"
	gmrenderer "github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// HighlightStyle is the chroma style used for fenced code blocks.
const HighlightStyle = "github"

// codeRenderer renders fenced code blocks with chroma, using inline styles
// so pages need no extra stylesheet.
type codeRenderer struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

func newCodeRenderer() *codeRenderer {
	return &codeRenderer{
		style:     styles.Get(HighlightStyle),
		formatter: chromahtml.New(chromahtml.TabWidth(4)),
	}
}

func (r *codeRenderer) RegisterFuncs(reg gmrenderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCode)
}

func (r *codeRenderer) renderFencedCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	lexer := lexers.Get(codeLanguage(n.Language(source)))
	if lexer == nil {
		lexer = lexers.Fallback
	}
	tokens, err := chroma.Coalesce(lexer).Tokenise(nil, code.String())
	if err != nil {
		return ast.WalkStop, err
	}
	if err := r.formatter.Format(w, r.style, tokens); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}

// codeLanguage strips attributes from an info string, "rust,ignore" -> "rust".
func codeLanguage(info []byte) string {
	lang, _, _ := strings.Cut(string(info), ",")
	return strings.TrimSpace(lang)
}
