package tools

import (
	"context"

	"toolbox/internal/domain/service"
)

type qrCodeInput struct {
	Content string `json:"content"`
	Size    int    `json:"size"`
}

// qrCodeTool renders text as a PNG QR code.
type qrCodeTool struct {
	encoder service.QRCodeEncoder
}

func newQRCodeTool(encoder service.QRCodeEncoder) *qrCodeTool {
	return &qrCodeTool{encoder: encoder}
}

func (t *qrCodeTool) Execute(_ context.Context, req *service.ToolRequest) *service.ToolResponse {
	in := qrCodeInput{}
	if resp := decodePayload(req, &in); resp != nil {
		return resp
	}
	if in.Content == "" {
		return service.Failure("content is required")
	}

	png, err := t.encoder.EncodePNG(in.Content, in.Size)
	if err != nil {
		return service.Failure(err.Error())
	}

	return &service.ToolResponse{
		IsSuccess:   true,
		ContentType: "image/png",
		Content:     png,
		FileName:    "qrcode.png",
	}
}
