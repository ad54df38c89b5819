package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reQ     = regexp.MustCompile(`^[\p{L}0-9 _.,'/\-]{1,50}$`)
	rePhone = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	reLabel = regexp.MustCompile(`^[\p{L}0-9 ./-]{1,20}$`)
	reURL   = regexp.MustCompile(`^https?://[^\s<>"']{1,500}$`)
)

// ID validates a simple resource identifier (product/category/order ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Q validates a search query: trims, enforces allowed characters and max length
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if utf8.RuneCountInString(s) > 50 {
		s = string([]rune(s)[:50])
	}
	return s, reQ.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > max || strings.ContainsAny(s, "<>") {
		return "", false
	}
	return s, true
}

// WhatsApp normalizes separators away and accepts 8..15 digits with an
// optional leading +.
func WhatsApp(s string) (string, bool) {
	s = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(s))
	return s, rePhone.MatchString(s)
}

// Date accepts YYYY-MM-DD.
func Date(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", false
	}
	return s, true
}

// Duration parses a rental length in days, clamping to 2..365.
func Duration(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 2 {
		return 2
	}
	if n > 365 {
		return 365
	}
	return n
}

// Delta accepts a non-zero quantity step within ±50.
func Delta(n int) bool {
	return n != 0 && n >= -50 && n <= 50
}

// Label validates an optional size or color label. Empty is allowed.
func Label(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, reLabel.MatchString(s)
}

// ImageURL accepts an empty value or an http(s) URL.
func ImageURL(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, reURL.MatchString(s)
}

// Password only bounds the length; bcrypt ignores bytes past 72.
func Password(s string) bool {
	return len(s) >= 1 && len(s) <= 72
}
