package utils

import (
	"encoding/base64"
	"strings"
)

// EncryptCardNumber encodes the PAN for storage. Display paths only ever see
// the masked form.
func EncryptCardNumber(cardNumber string) string {
	return base64.StdEncoding.EncodeToString([]byte(cardNumber))
}

// DecryptCardNumber reverses EncryptCardNumber.
func DecryptCardNumber(encrypted string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// MaskCardNumber renders the display form, e.g. "**** **** **** 1234".
func MaskCardNumber(cardNumber string) string {
	digits := strings.ReplaceAll(cardNumber, " ", "")
	if len(digits) < 4 {
		return "****"
	}
	return "**** **** **** " + digits[len(digits)-4:]
}

// ValidCardNumber checks the PAN is 13-19 digits, spaces allowed.
func ValidCardNumber(cardNumber string) bool {
	digits := strings.ReplaceAll(cardNumber, " ", "")
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
