package material

import (
	"encoding/json"
	"strings"

	"lumbertrace/internal/core/apperror"
)

// ScanPayload is what material labels encode in their QR code.
type ScanPayload struct {
	ID string `json:"id"`
}

// EncodeScanPayload renders the QR payload for a material id.
func EncodeScanPayload(materialID string) string {
	b, _ := json.Marshal(ScanPayload{ID: materialID})
	return string(b)
}

// ParseScanPayload extracts a material id from scanned text. Labels carry
// {"id":"MAT-..."}; hand-typed codes and older labels carry the bare id.
func ParseScanPayload(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", apperror.NewInvalidScan(raw)
	}

	if strings.HasPrefix(text, "{") {
		var p ScanPayload
		if err := json.Unmarshal([]byte(text), &p); err == nil {
			if id := strings.TrimSpace(p.ID); id != "" {
				return id, nil
			}
			return "", apperror.NewInvalidScan(raw)
		}
	}

	return text, nil
}
