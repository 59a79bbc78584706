package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"

	"resume-ai-backend/internal/llm"
)

// Renderer converts Markdown text into a PDF document.
type Renderer interface {
	RenderPDF(ctx context.Context, markdown string) ([]byte, error)
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 11pt; line-height: 1.45; margin: 2.2cm; color: #1a1a1a; }
h1 { font-size: 18pt; margin-bottom: 0.2em; border-bottom: 1px solid #999; padding-bottom: 0.15em; }
h2 { font-size: 13pt; margin-top: 1.1em; margin-bottom: 0.3em; }
h3 { font-size: 11.5pt; margin-bottom: 0.2em; }
ul { margin-top: 0.2em; }
li { margin-bottom: 0.15em; }
a { color: #1a1a1a; }
</style>
</head>
<body>
%s
</body>
</html>`

// HTMLFromMarkdown strips any stray code fences from the model output and
// converts the Markdown to a printable HTML page.
func HTMLFromMarkdown(markdown string) (string, error) {
	cleaned := llm.CleanFences(markdown)

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(cleaned), &buf); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	return fmt.Sprintf(pageTemplate, buf.String()), nil
}
