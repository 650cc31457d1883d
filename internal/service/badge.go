package service

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// BadgePNG encodes an employee badge as a QR png. The payload carries
// the kiosk base url and the employee id so a scan opens the kiosk
// preselected for that employee.
func BadgePNG(baseURL string, employeeID int) ([]byte, error) {
	payload := fmt.Sprintf("%s/kiosk?employee=%d", baseURL, employeeID)

	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("error encoding badge: %w", err)
	}
	return png, nil
}
