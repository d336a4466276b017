package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// SanitizeString trims whitespace and strips control characters
func SanitizeString(input string) string {
	cleaned := strings.TrimSpace(input)
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, cleaned)
}

// ValidateEmail checks email format
func ValidateEmail(email string) (bool, string) {
	if email == "" {
		return false, "Email is required"
	}
	if !emailRegex.MatchString(email) {
		return false, "Invalid email format"
	}
	return true, ""
}

// ValidatePassword enforces the platform password policy
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters long"
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return false, "Password must contain uppercase, lowercase and a digit"
	}
	return true, ""
}

// ValidateUsername checks username format
func ValidateUsername(username string) (bool, string) {
	if len(username) < 3 || len(username) > 30 {
		return false, "Username must be between 3 and 30 characters"
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.' {
			return false, "Username may only contain letters, digits, underscore and dot"
		}
	}
	return true, ""
}

// ValidateName checks a display name
func ValidateName(name string) (bool, string) {
	if len(name) < 2 || len(name) > 60 {
		return false, "Name must be between 2 and 60 characters"
	}
	return true, ""
}

// ValidateCountry checks an ISO-style country value
func ValidateCountry(country string) (bool, string) {
	if country == "" {
		return true, "" // optional
	}
	if len(country) < 2 || len(country) > 56 {
		return false, "Invalid country"
	}
	return true, ""
}
