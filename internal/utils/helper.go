package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

func StrPtr(s string) *string {
	return &s
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// FormatOrderNumber renders a sequence value as a business order code, e.g. P0042.
func FormatOrderNumber(seq int64) string {
	return fmt.Sprintf("P%04d", seq)
}

// EmailLocalPart returns the part of an email before "@".
func EmailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
