package domain

import (
	"fmt"
	"strings"
	"time"
)

// QRCode is owned by a user and may be bound to at most one bio page.
// ScanCount is server-owned.
type QRCode struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Size      int       `json:"size"`
	FgColor   string    `json:"fgColor"`
	BgColor   string    `json:"bgColor"`
	ScanCount int64     `json:"scanCount"`
	CreatedAt time.Time `json:"createdAt"`
}

// QRCodeRequest is the create payload.
type QRCodeRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Size    int    `json:"size"`
	FgColor string `json:"fgColor"`
	BgColor string `json:"bgColor"`
}

// EncodedValue is the value actually baked into the QR image. Absolute
// http(s) content goes through the backend's scan-tracking redirect so scans
// are countable server-side; anything else (phone numbers, plain text) is
// encoded verbatim.
func (q QRCode) EncodedValue(apiBaseURL string) string {
	if strings.HasPrefix(q.Content, "http://") || strings.HasPrefix(q.Content, "https://") {
		return fmt.Sprintf("%s/qr-codes/public/%d/scan", strings.TrimRight(apiBaseURL, "/"), q.ID)
	}
	return q.Content
}
