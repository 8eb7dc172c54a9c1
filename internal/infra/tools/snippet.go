package tools

import (
	"context"
	"regexp"

	"toolbox/internal/domain/service"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const maxSnippetInput = 64 << 10

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type snippetInput struct {
	Source string `json:"source"`
	From   string `json:"from"`
	To     string `json:"to"`
}

type snippetResult struct {
	Rewritten    string `json:"rewritten"`
	Patch        string `json:"patch"`
	Replacements int    `json:"replacements"`
}

// snippetRewriter renames an identifier in a code snippet and reports the change as a patch.
type snippetRewriter struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

func newSnippetRewriter() *snippetRewriter {
	return &snippetRewriter{dmp: diffmatchpatch.New()}
}

func (r *snippetRewriter) Execute(_ context.Context, req *service.ToolRequest) *service.ToolResponse {
	in := snippetInput{}
	if resp := decodePayload(req, &in); resp != nil {
		return resp
	}
	if len(in.Source) > maxSnippetInput {
		return service.Failure("source is too long")
	}
	if !identifierPattern.MatchString(in.From) || !identifierPattern.MatchString(in.To) {
		return service.Failure("from and to must be identifiers")
	}

	word := regexp.MustCompile(`\b` + regexp.QuoteMeta(in.From) + `\b`)
	replacements := len(word.FindAllStringIndex(in.Source, -1))
	rewritten := word.ReplaceAllLiteralString(in.Source, in.To)

	diffs := r.dmp.DiffMain(in.Source, rewritten, false)
	diffs = r.dmp.DiffCleanupSemantic(diffs)
	patch := r.dmp.PatchToText(r.dmp.PatchMake(in.Source, diffs))

	return service.Success(snippetResult{
		Rewritten:    rewritten,
		Patch:        patch,
		Replacements: replacements,
	})
}
