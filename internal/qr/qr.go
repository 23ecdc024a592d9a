package qr

import (
	"encoding/json"

	qrcode "github.com/skip2/go-qrcode"

	"pointage/internal/errors"
)

// payload is what the scanner client reads out of a workstation QR
type payload struct {
	Type string `json:"type"`
	Code string `json:"code"`
}

// WorkstationPNG renders the QR image for a workstation code. The image
// encodes a small JSON payload so the scanner can tell workstation codes
// apart from any other QR it might read.
func WorkstationPNG(code string, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	content, err := json.Marshal(payload{Type: "workstation", Code: code})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode QR payload")
	}
	png, err := qrcode.Encode(string(content), qrcode.Medium, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate QR code")
	}
	return png, nil
}
