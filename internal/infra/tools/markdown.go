package tools

import (
	"bytes"
	"context"
	"html"

	"toolbox/internal/domain/service"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

const maxMarkdownInput = 256 << 10

type markdownInput struct {
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
}

// markdownDocument converts Markdown into a standalone HTML document.
type markdownDocument struct {
	md goldmark.Markdown
}

func newMarkdownDocument() *markdownDocument {
	return &markdownDocument{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

func (d *markdownDocument) Execute(_ context.Context, req *service.ToolRequest) *service.ToolResponse {
	in := markdownInput{}
	if resp := decodePayload(req, &in); resp != nil {
		return resp
	}
	if in.Markdown == "" {
		return service.Failure("markdown is required")
	}
	if len(in.Markdown) > maxMarkdownInput {
		return service.Failure("markdown is too long")
	}

	title := in.Title
	if title == "" {
		title = "Document"
	}

	var body bytes.Buffer
	if err := d.md.Convert([]byte(in.Markdown), &body); err != nil {
		return service.Failure("failed to render markdown: " + err.Error())
	}

	var doc bytes.Buffer
	doc.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	doc.WriteString(html.EscapeString(title))
	doc.WriteString("</title>\n</head>\n<body>\n")
	doc.Write(body.Bytes())
	doc.WriteString("</body>\n</html>\n")

	return &service.ToolResponse{
		IsSuccess:   true,
		ContentType: "text/html; charset=utf-8",
		Content:     doc.Bytes(),
		FileName:    "document.html",
	}
}
