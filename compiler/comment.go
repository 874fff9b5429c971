package compiler

import (
	"fmt"
	"sort"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/cayleygraph/quad"
	"golang.org/x/net/html"

	"github.com/c360studio/semproto/store"
	"github.com/c360studio/semproto/vocabulary/schemaorg"
)

// CommentStyle selects how HTML in rdfs:comment literals is rendered.
type CommentStyle string

const (
	// CommentText keeps only the text content of the markup.
	CommentText CommentStyle = "text"

	// CommentMarkdown converts markup such as links and lists to Markdown.
	CommentMarkdown CommentStyle = "markdown"
)

// commentRenderer turns the HTML of a vocabulary comment into plain lines.
type commentRenderer interface {
	Render(htmlText string) string
}

func newCommentRenderer(style CommentStyle) (commentRenderer, error) {
	switch style {
	case "", CommentText:
		return textRenderer{}, nil
	case CommentMarkdown:
		return newMarkdownRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown comment style %q", style)
	}
}

// textRenderer drops every tag and keeps the unescaped text.
type textRenderer struct{}

func (textRenderer) Render(htmlText string) string {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(htmlText))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed markup; either way keep what was read.
			return strings.TrimSpace(sb.String())
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}

type markdownRenderer struct {
	converter *md.Converter
}

func newMarkdownRenderer() *markdownRenderer {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &markdownRenderer{converter: converter}
}

func (r *markdownRenderer) Render(htmlText string) string {
	out, err := r.converter.ConvertString(htmlText)
	if err != nil {
		// Fall back to the text content.
		return textRenderer{}.Render(htmlText)
	}
	return strings.TrimSpace(out)
}

// entityComment collects the rdfs:comment literals of an entity, sorted and
// concatenated, and renders them.
func entityComment(st *store.Store, subject quad.IRI, r commentRenderer) string {
	var parts []string
	for _, v := range st.Objects(subject, schemaorg.RDFSComment) {
		if text, ok := store.LiteralText(v); ok {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	sort.Strings(parts)
	return r.Render(strings.Join(parts, ""))
}
