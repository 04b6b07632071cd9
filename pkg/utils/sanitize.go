package utils

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

// SanitizeString removes potentially dangerous characters and escapes HTML
func SanitizeString(input string) string {
	trimmed := strings.TrimSpace(input)
	return html.EscapeString(trimmed)
}

// SanitizeEmail sanitizes email input
func SanitizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	email = stripHTML(email)
	email = removeControlChars(email)
	return email
}

// SanitizePhone keeps the characters a phone number may legitimately carry.
func SanitizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = stripHTML(phone)

	var result strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) || r == '+' || r == '-' || r == ' ' || r == '(' || r == ')' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// SanitizeText sanitizes multi-line text input, keeping newlines and tabs.
func SanitizeText(input string) string {
	trimmed := strings.TrimSpace(input)
	escaped := html.EscapeString(trimmed)

	var result strings.Builder
	for _, r := range escaped {
		if unicode.IsPrint(r) || r == '\n' || r == '\t' || r == '\r' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

func stripHTML(input string) string {
	re := regexp.MustCompile(`<[^>]*>`)
	return re.ReplaceAllString(input, "")
}

func removeControlChars(input string) string {
	var result strings.Builder
	for _, r := range input {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}
