package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxIDLength bounds course and user identifiers.
const maxIDLength = 128

// ValidateCourseID validates a course identifier used as a store key.
// It rejects identifiers that could be used for path traversal or key injection.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or whitespace
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateCourseID(id string) error {
	return validateID(ErrCodeInvalidCourse, "course id", id)
}

// ValidateUserID validates a user identifier used for toggle persistence.
// It applies the same rules as ValidateCourseID.
func ValidateUserID(id string) error {
	return validateID(ErrCodeInvalidInput, "user id", id)
}

func validateID(code Code, what, id string) error {
	if id == "" {
		return New(code, "%s cannot be empty", what)
	}

	if len(id) > maxIDLength {
		return New(code, "%s too long (max %d characters)", what, maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(code, "%s contains invalid characters", what)
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
		":",    // Redis key separator
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(code, "%s contains invalid characters: %q", what, pattern)
		}
	}

	return nil
}

// colourRegex matches a six-digit RGB hex colour with an optional leading '#'.
var colourRegex = regexp.MustCompile(`^#?[0-9A-Fa-f]{6}$`)

// ValidateColour validates an RGB colour: an optional '#' and then six
// hexadecimal digits.
func ValidateColour(colour string) error {
	if !colourRegex.MatchString(colour) {
		return New(ErrCodeInvalidColour, "invalid colour %q: want '#' and six hexadecimal digits", colour)
	}
	return nil
}

// NormalizeColour strips a leading '#' and lower-cases a valid colour.
// Invalid colours are returned unchanged.
func NormalizeColour(colour string) string {
	if ValidateColour(colour) != nil {
		return colour
	}
	return strings.ToLower(strings.TrimPrefix(colour, "#"))
}
