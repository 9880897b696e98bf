package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateToken returns an opaque single-use token for reset/invite links.
func GenerateToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

// FormatDate renders timestamps the way the dashboard expects them (dd.mm.yyyy).
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateTime renders full timestamps (dd.mm.yyyy hh:mm:ss).
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04:05")
}

// FullName joins first and last name, tolerating either being empty.
func FullName(firstName, lastName string) string {
	return strings.TrimSpace(firstName + " " + lastName)
}
