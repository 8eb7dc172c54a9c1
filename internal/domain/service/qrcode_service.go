package service

// QRCodeEncoder renders arbitrary text as a PNG QR code.
type QRCodeEncoder interface {
	// EncodePNG returns the PNG bytes. A non-positive size falls back to the configured default.
	EncodePNG(content string, size int) ([]byte, error)
}
