// Package timeutil converts wall-clock times authored in an IANA timezone
// to and from UTC instants. Offsets are resolved through the zone database
// for the specific date in question, so DST transitions are honored; there
// is no static offset table anywhere in this package.
package timeutil

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimezone = errors.New("invalid timezone")

// localLayout is the wire format for naive local date-times.
const localLayout = "2006-01-02T15:04:05"

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// LoadZone resolves an IANA timezone name. An empty name defaults to UTC.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, name)
	}
	return loc, nil
}

func IsValidTimezone(name string) bool {
	if name == "" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// ToUTC interprets a naive local date-time string as wall-clock time in the
// given zone and returns the equivalent UTC instant in RFC 3339 form with a
// trailing "Z".
func ToUTC(local, zone string) (string, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return "", err
	}
	t, err := parseLocal(local, loc)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(time.RFC3339), nil
}

// FromUTC renders a UTC instant as the wall-clock time it reads in the given
// zone, without an offset suffix.
func FromUTC(utc, zone string) (string, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return "", err
	}
	t, err := parseInstant(utc)
	if err != nil {
		return "", err
	}
	return t.In(loc).Format(localLayout), nil
}

// ResolveInstant parses a date-time string into a UTC instant. Values
// carrying an explicit offset (or "Z") are taken as-is; naive values are
// interpreted as wall-clock time in the given zone.
func ResolveInstant(value, zone string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	loc, err := LoadZone(zone)
	if err != nil {
		return time.Time{}, err
	}
	t, err := parseLocal(value, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// IsFutureDate reports whether the given date-time is strictly after now.
// The zone only affects how a naive local string is interpreted.
func IsFutureDate(value, zone string) (bool, error) {
	t, err := ResolveInstant(value, zone)
	if err != nil {
		return false, err
	}
	return t.After(time.Now()), nil
}

// Countdown decomposes the remaining time until a target instant.
type Countdown struct {
	IsPast  bool `json:"is_past"`
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
}

// TimeUntil reports how far in the future the target is. Past targets
// report IsPast with zeroed fields rather than a negative duration.
func TimeUntil(target time.Time) Countdown {
	return countdownBetween(time.Now(), target)
}

func countdownBetween(now, target time.Time) Countdown {
	d := target.Sub(now)
	if d <= 0 {
		return Countdown{IsPast: true}
	}
	secs := int(d.Seconds())
	return Countdown{
		Days:    secs / 86400,
		Hours:   secs % 86400 / 3600,
		Minutes: secs % 3600 / 60,
		Seconds: secs % 60,
	}
}

func parseLocal(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q", value)
}

func parseInstant(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	// naive values are taken as UTC
	for _, layout := range localLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q", value)
}
