// Package tools contains the built-in tool implementations served through the dispatch registry.
package tools

import (
	"encoding/json"

	"toolbox/config"
	"toolbox/internal/domain/service"

	"go.uber.org/fx"
)

// Built-in tool kinds.
const (
	KindPasswordGenerator service.ToolKind = "password-generator"
	KindTextTransform     service.ToolKind = "text-transform"
	KindQRCode            service.ToolKind = "qr-code"
	KindBcryptHash        service.ToolKind = "bcrypt-hash"
	KindMarkdownDocument  service.ToolKind = "markdown-document"
	KindSnippetRewriter   service.ToolKind = "snippet-rewriter"
)

// Params defines the required parameters
type Params struct {
	fx.In

	Config *config.Config
	QRCode service.QRCodeEncoder
	Hasher service.PasswordHasher
}

// NewKinds returns the factory of every built-in tool kind.
func NewKinds(params Params) service.ToolKinds {
	passwordLength := defaultPasswordLength
	if params.Config != nil && params.Config.Tools != nil && params.Config.Tools.PasswordDefaultLength > 0 {
		passwordLength = params.Config.Tools.PasswordDefaultLength
	}

	return service.ToolKinds{
		KindPasswordGenerator: func() service.ToolHandler { return newPasswordGenerator(passwordLength) },
		KindTextTransform:     func() service.ToolHandler { return newTextTransformer() },
		KindQRCode:            func() service.ToolHandler { return newQRCodeTool(params.QRCode) },
		KindBcryptHash:        func() service.ToolHandler { return newBcryptTool(params.Hasher) },
		KindMarkdownDocument:  func() service.ToolHandler { return newMarkdownDocument() },
		KindSnippetRewriter:   func() service.ToolHandler { return newSnippetRewriter() },
	}
}

// decodePayload unmarshals req.Payload into dst. An empty payload leaves dst untouched.
func decodePayload(req *service.ToolRequest, dst any) *service.ToolResponse {
	if len(req.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(req.Payload, dst); err != nil {
		return service.Failure("invalid payload: " + err.Error())
	}

	return nil
}
