// services/qrcode_service.go
package services

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// JudgeLoginURL builds the shareable judge-login link for a competition.
func JudgeLoginURL(applicationURL, competitionID string) string {
	return fmt.Sprintf("%s/competition/%s/judge", applicationURL, competitionID)
}

// ScoreboardURL builds the shareable public scoreboard link for a competition.
func ScoreboardURL(applicationURL, competitionID string) string {
	return fmt.Sprintf("%s/competition/%s/scoreboard", applicationURL, competitionID)
}

// GenerateQRCode renders the given URL as a PNG QR code of the given size.
func GenerateQRCode(url string, size int) ([]byte, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}
