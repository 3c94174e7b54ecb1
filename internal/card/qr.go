package card

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRSize is the edge length in pixels of the QR printed on a card.
const QRSize = 120

// QRPNG encodes url as a PNG QR code.
func QRPNG(url string, size int) ([]byte, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr for %s: %w", url, err)
	}
	return png, nil
}

// QRDataURL is QRPNG wrapped as a data:image/png;base64 URL.
func QRDataURL(url string, size int) (string, error) {
	png, err := QRPNG(url, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
