package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
	"gorm.io/gorm"

	"container-tracking/database"
	"container-tracking/models/user"
	"container-tracking/types"
)

// DateLayout is the wire format for effective dates and ETAs.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date, truncated to the beginning of day.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("date is required")
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return now.With(t).BeginningOfDay(), nil
}

// ParseOptionalDate parses a date or returns nil for an empty value.
func ParseOptionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// portCodeNames maps port codes to human-readable names.
var portCodeNames = map[string]string{
	"KMYVA": "Moroni",
	"KMMUT": "Mutsamudu",
}

// MapLocationCodes replaces a known port code with its display name; unknown
// values pass through unchanged.
func MapLocationCodes(location string) string {
	if name, ok := portCodeNames[strings.ToUpper(strings.TrimSpace(location))]; ok {
		return name
	}
	return location
}

// FormatDocumentNumber renders a delivery order number from the counter.
func FormatDocumentNumber(counter int) string {
	return fmt.Sprintf("DO-%06d", counter)
}

// GetUserByID retrieves a user by id from the database
func GetUserByID(id uint) (*user.User, error) {
	var userModel user.User
	if err := database.DB.First(&userModel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &userModel, nil
}

// CreateSanitizedLogEntry creates a deep copied log entry for async logging.
// Oversized bodies are truncated so audit rows stay bounded.
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := truncateBody(string(c.Body()))
	responseBody := truncateBody(string(append([]byte(nil), c.Response().Body()...)))

	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}

const maxLoggedBody = 4096

func truncateBody(body string) string {
	if len(body) > maxLoggedBody {
		return body[:maxLoggedBody] + "...[TRUNCATED]"
	}
	return body
}
