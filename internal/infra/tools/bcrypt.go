package tools

import (
	"context"

	"toolbox/internal/domain/service"
)

type bcryptInput struct {
	Text string `json:"text"`
	Hash string `json:"hash"`
}

type bcryptHashResult struct {
	Hash      string `json:"hash"`
	Algorithm string `json:"algorithm"`
	Cost      int    `json:"cost"`
}

type bcryptVerifyResult struct {
	Matches bool `json:"matches"`
	Cost    int  `json:"cost"`
}

// bcryptTool hashes text, or verifies text against a hash when one is given.
type bcryptTool struct {
	hasher service.PasswordHasher
}

func newBcryptTool(hasher service.PasswordHasher) *bcryptTool {
	return &bcryptTool{hasher: hasher}
}

func (t *bcryptTool) Execute(_ context.Context, req *service.ToolRequest) *service.ToolResponse {
	in := bcryptInput{}
	if resp := decodePayload(req, &in); resp != nil {
		return resp
	}
	if in.Text == "" {
		return service.Failure("text is required")
	}

	if in.Hash != "" {
		return t.verify(in)
	}

	hash, err := t.hasher.Hash(in.Text)
	if err != nil {
		return service.Failure(err.Error())
	}
	info, err := t.hasher.Inspect(hash)
	if err != nil {
		return service.Failure(err.Error())
	}

	return service.Success(bcryptHashResult{Hash: hash, Algorithm: info.Algorithm, Cost: info.Cost})
}

func (t *bcryptTool) verify(in bcryptInput) *service.ToolResponse {
	info, err := t.hasher.Inspect(in.Hash)
	if err != nil {
		return service.Failure("hash is not a valid bcrypt hash")
	}
	matches, err := t.hasher.Verify(in.Text, in.Hash)
	if err != nil {
		return service.Failure("hash is not a valid bcrypt hash")
	}

	return service.Success(bcryptVerifyResult{Matches: matches, Cost: info.Cost})
}
