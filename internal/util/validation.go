package util

import (
	"strings"

	"github.com/google/uuid"
)

// CanonicalUUID parses s and returns it in lowercase hyphenated form, which
// sorts the same way Postgres orders uuid values.
func CanonicalUUID(s string) (string, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

func IsValidEnum(value string, validValues []string) bool {
	if value == "" {
		return true
	}
	for _, v := range validValues {
		if value == v {
			return true
		}
	}
	return false
}

// NormalizeWord lowercases and trims a blocked word before storage.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
