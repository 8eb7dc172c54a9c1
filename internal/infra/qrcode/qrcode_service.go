// Package qrcode renders QR codes as PNG images.
package qrcode

import (
	"toolbox/config"
	"toolbox/internal/domain/service"
	"toolbox/internal/errors"

	"github.com/skip2/go-qrcode"
)

// maxQRCodeSize bounds the rendered image edge in pixels.
const maxQRCodeSize = 2048

type qrcodeEncoder struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeEncoder creates a new QR code encoder instance
func NewQRCodeEncoder(size int, errorCorrectionLevel string) service.QRCodeEncoder {
	return &qrcodeEncoder{
		size:                 size,
		errorCorrectionLevel: recoveryLevel(errorCorrectionLevel),
	}
}

// New builds the encoder from the tools configuration.
func New(cfg *config.Config) service.QRCodeEncoder {
	if cfg.Tools == nil {
		// Use default values if not configured
		return NewQRCodeEncoder(256, "M")
	}

	return NewQRCodeEncoder(cfg.Tools.QRCode.Size, cfg.Tools.QRCode.ErrorCorrectionLevel)
}

func recoveryLevel(level string) qrcode.RecoveryLevel {
	switch level {
	case "L":
		return qrcode.Low
	case "M":
		return qrcode.Medium
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// EncodePNG renders content as a PNG QR code.
func (e *qrcodeEncoder) EncodePNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, errors.New("QR code content is empty")
	}
	if size <= 0 {
		size = e.size
	}
	if size > maxQRCodeSize {
		return nil, errors.Errorf("QR code size %d exceeds %d", size, maxQRCodeSize)
	}

	qrCode, err := qrcode.New(content, e.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}
