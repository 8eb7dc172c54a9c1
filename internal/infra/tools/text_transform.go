package tools

import (
	"context"
	"strings"
	"unicode"

	"toolbox/internal/domain/service"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const maxTransformInput = 64 << 10

type textTransformInput struct {
	Text     string `json:"text"`
	Mode     string `json:"mode"`
	Language string `json:"language"`
}

type textTransformResult struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

// textTransformer applies case and shape conversions to text.
type textTransformer struct{}

func newTextTransformer() *textTransformer {
	return &textTransformer{}
}

func (t *textTransformer) Execute(_ context.Context, req *service.ToolRequest) *service.ToolResponse {
	in := textTransformInput{}
	if resp := decodePayload(req, &in); resp != nil {
		return resp
	}
	if len(in.Text) > maxTransformInput {
		return service.Failure("text is too long")
	}

	tag := language.Und
	if in.Language != "" {
		parsed, err := language.Parse(in.Language)
		if err != nil {
			return service.Failure("unknown language " + in.Language)
		}
		tag = parsed
	}

	var out string
	switch in.Mode {
	case "upper":
		out = cases.Upper(tag).String(in.Text)
	case "lower":
		out = cases.Lower(tag).String(in.Text)
	case "title":
		out = cases.Title(tag).String(in.Text)
	case "reverse":
		out = reverse(in.Text)
	case "slug":
		out = slugify(cases.Lower(tag).String(in.Text))
	default:
		return service.Failure("mode must be upper, lower, title, reverse or slug")
	}

	return service.Success(textTransformResult{Text: out, Mode: in.Mode})
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false

			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
