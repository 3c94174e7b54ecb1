package logger

import "strings"

// MaskPhone keeps the last four digits.
// Example: 0812345678 -> ******5678
func MaskPhone(phone string) string {
	if phone == "" {
		return ""
	}
	if len(phone) <= 4 {
		return strings.Repeat("*", len(phone))
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

// MaskSecret hides a credential entirely while keeping its length visible for debugging.
func MaskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	return "[" + strings.Repeat("*", min(len(secret), 8)) + "]"
}
