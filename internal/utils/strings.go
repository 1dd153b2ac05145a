package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

var (
	phoneRegex   = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	controlRegex = regexp.MustCompile(`[\p{Cc}\p{Cf}\p{Co}\p{Cs}]`)
	spaceRegex   = regexp.MustCompile(`\s+`)
	nonDigit     = regexp.MustCompile(`[^0-9]`)
)

// GenerateNumericCode returns a zero padded random code of n decimal digits
func GenerateNumericCode(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("code length must be positive, got %d", n)
	}
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate random code: %w", err)
	}
	return fmt.Sprintf("%0*d", n, v.Int64()), nil
}

// GenerateRandomHex generates a random hex string of the specified length
func GenerateRandomHex(length int) (string, error) {
	bytes := make([]byte, length/2)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// IsValidPhoneNumber checks if a string is a valid phone number
func IsValidPhoneNumber(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// Truncate truncates a string to the specified length and adds ellipsis if needed
func Truncate(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return "..."
	}
	return string(runes[:maxLength-3]) + "..."
}

// SanitizeString replaces control characters and collapses whitespace
func SanitizeString(s string) string {
	result := controlRegex.ReplaceAllString(s, " ")
	result = spaceRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// MaskPhoneNumber masks a phone number, keeping only the last 4 digits visible
func MaskPhoneNumber(phone string) string {
	clean := nonDigit.ReplaceAllString(phone, "")
	if len(clean) <= 4 {
		return clean
	}
	return strings.Repeat("*", len(clean)-4) + clean[len(clean)-4:]
}
