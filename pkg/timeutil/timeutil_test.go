package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidTimezone(t *testing.T) {
	valid := []string{"UTC", "America/New_York", "Europe/London", "Asia/Tokyo"}
	for _, name := range valid {
		assert.True(t, IsValidTimezone(name), name)
	}

	invalid := []string{"Invalid/Timezone", "NotATimezone", "America/FakeCity", ""}
	for _, name := range invalid {
		assert.False(t, IsValidTimezone(name), name)
	}
}

func TestToUTC(t *testing.T) {
	tests := []struct {
		name  string
		local string
		zone  string
		want  string
	}{
		{name: "new york winter", local: "2026-02-08T14:30:00", zone: "America/New_York", want: "2026-02-08T19:30:00Z"},
		{name: "los angeles winter", local: "2026-02-08T10:00:00", zone: "America/Los_Angeles", want: "2026-02-08T18:00:00Z"},
		{name: "utc passthrough", local: "2026-02-08T14:30:00", zone: "UTC", want: "2026-02-08T14:30:00Z"},
		{name: "minute precision input", local: "2026-02-08T14:30", zone: "UTC", want: "2026-02-08T14:30:00Z"},
		{name: "tokyo", local: "2026-02-09T03:00:00", zone: "Asia/Tokyo", want: "2026-02-08T18:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToUTC(tt.local, tt.zone)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToUTCResolvesOffsetPerDate(t *testing.T) {
	// Same wall-clock time, same zone: EDT in June, EST in December.
	summer, err := ToUTC("2026-06-15T12:00:00", "America/New_York")
	require.NoError(t, err)
	winter, err := ToUTC("2026-12-15T12:00:00", "America/New_York")
	require.NoError(t, err)

	assert.Equal(t, "2026-06-15T16:00:00Z", summer)
	assert.Equal(t, "2026-12-15T17:00:00Z", winter)
}

func TestToUTCInvalidTimezone(t *testing.T) {
	_, err := ToUTC("2026-02-08T14:30:00", "America/FakeCity")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestToUTCInvalidDateTime(t *testing.T) {
	_, err := ToUTC("not-a-date", "UTC")
	assert.Error(t, err)
}

func TestFromUTC(t *testing.T) {
	got, err := FromUTC("2026-02-08T19:30:00Z", "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-08T14:30:00", got)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		local string
		zone  string
	}{
		{local: "2026-02-08T14:30:00", zone: "America/New_York"},
		{local: "2026-06-15T12:00:00", zone: "America/New_York"},
		{local: "2026-03-01T23:59:59", zone: "Asia/Tokyo"},
		{local: "2026-11-05T08:00:00", zone: "Europe/London"},
		{local: "2026-07-04T00:00:00", zone: "UTC"},
	}

	for _, tt := range tests {
		utc, err := ToUTC(tt.local, tt.zone)
		require.NoError(t, err)
		back, err := FromUTC(utc, tt.zone)
		require.NoError(t, err)
		assert.Equal(t, tt.local, back, "%s in %s", tt.local, tt.zone)
	}
}

func TestResolveInstant(t *testing.T) {
	// Explicit offsets ignore the zone argument.
	got, err := ResolveInstant("2026-02-08T19:30:00Z", "Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 8, 19, 30, 0, 0, time.UTC), got)

	// Naive values are interpreted in the zone.
	got, err = ResolveInstant("2026-02-08T14:30:00", "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 8, 19, 30, 0, 0, time.UTC), got)

	_, err = ResolveInstant("2026-02-08T14:30:00", "NotATimezone")
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestIsFutureDate(t *testing.T) {
	future := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	got, err := IsFutureDate(future, "")
	require.NoError(t, err)
	assert.True(t, got)

	past := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	got, err = IsFutureDate(past, "America/New_York")
	require.NoError(t, err)
	assert.False(t, got)
}

func TestCountdownBetween(t *testing.T) {
	now := time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target time.Time
		want   Countdown
	}{
		{
			name:   "two hours five minutes",
			target: now.Add(2*time.Hour + 5*time.Minute),
			want:   Countdown{Hours: 2, Minutes: 5},
		},
		{
			name:   "one hour past",
			target: now.Add(-time.Hour),
			want:   Countdown{IsPast: true},
		},
		{
			name:   "days hours minutes seconds",
			target: now.Add(3*24*time.Hour + 4*time.Hour + 5*time.Minute + 6*time.Second),
			want:   Countdown{Days: 3, Hours: 4, Minutes: 5, Seconds: 6},
		},
		{
			name:   "exactly now is past",
			target: now,
			want:   Countdown{IsPast: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countdownBetween(now, tt.target))
		})
	}
}

func TestTimeUntil(t *testing.T) {
	got := TimeUntil(time.Now().Add(48*time.Hour + time.Minute))
	assert.False(t, got.IsPast)
	assert.Equal(t, 2, got.Days)

	got = TimeUntil(time.Now().Add(-time.Minute))
	assert.True(t, got.IsPast)
	assert.Zero(t, got.Days)
	assert.Zero(t, got.Hours)
}
