package utils

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	DateLayoutDMY = "02/01/2006"
	DateLayoutISO = "2006-01-02"
)

// ParseDMY parses a DD/MM/YYYY date.
func ParseDMY(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayoutDMY, strings.TrimSpace(s), time.Local)
}

// ParseFlexibleDate accepts YYYY-MM-DD or DD/MM/YYYY.
func ParseFlexibleDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(DateLayoutISO, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := ParseDMY(s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func FormatDMY(t time.Time) string {
	return t.Format(DateLayoutDMY)
}

func FormatDMYPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDMY(*t)
	return &s
}

// TruncateDate drops the clock part, keeping the calendar date in t's location.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween counts whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	a = TruncateDate(a)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, a.Location())
	return int(math.Round(b.Sub(a).Hours() / 24))
}
