package dose

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "RFC3339 UTC",
			value: "2024-03-01T08:00:00Z",
			want:  time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			name:  "RFC3339 with offset normalizes to UTC",
			value: "2024-03-01T03:00:00-05:00",
			want:  time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			name:  "bare ISO without zone read as UTC",
			value: "2024-03-01T08:00:00",
			want:  time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			name:  "sheet cell with space separator",
			value: "2024-03-01 08:00:00",
			want:  time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
		},
		{name: "empty", value: "", wantErr: true},
		{name: "whitespace only", value: "   ", wantErr: true},
		{name: "garbage", value: "yesterday-ish", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   float64
		wantOK bool
	}{
		{name: "json number", value: 1.5, want: 1.5, wantOK: true},
		{name: "integer", value: 2, want: 2, wantOK: true},
		{name: "numeric string", value: "0.5", want: 0.5, wantOK: true},
		{name: "padded numeric string", value: " 1 ", want: 1, wantOK: true},
		{name: "zero", value: 0.0, want: 0, wantOK: true},
		{name: "non-numeric string", value: "two pills", wantOK: false},
		{name: "nil", value: nil, wantOK: false},
		{name: "negative", value: -1.0, wantOK: false},
		{name: "bool", value: true, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			} else {
				assert.Zero(t, got)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	records := []Raw{
		{Amount: 1.0, Timestamp: "2024-03-01T08:00:00Z"},
		{Amount: "0.5", Timestamp: "2024-03-01T20:00:00Z"},
		{Amount: 1.0, Timestamp: "not-a-time"},
		{Amount: "broken", Timestamp: "2024-03-02T08:00:00Z"},
	}

	events, warnings := Normalize(records)

	// The unparseable timestamp drops its record; the unparseable amount
	// keeps its record at zero contribution.
	require.Len(t, events, 3)
	assert.InDelta(t, 1.0, events[0].Amount, 1e-9)
	assert.InDelta(t, 0.5, events[1].Amount, 1e-9)
	assert.Zero(t, events[2].Amount)

	require.Len(t, warnings, 2)
	assert.Equal(t, WarnMalformedTimestamp, warnings[0].Kind)
	assert.Equal(t, WarnMalformedAmount, warnings[1].Kind)
	assert.Contains(t, warnings[0].String(), "not-a-time")
}

func TestNormalizeEmpty(t *testing.T) {
	events, warnings := Normalize(nil)
	assert.Empty(t, events)
	assert.Empty(t, warnings)
}

func TestNewRawRoundTrip(t *testing.T) {
	at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	raw := NewRaw(1.5, at)

	events, warnings := Normalize([]Raw{raw})
	require.Len(t, events, 1)
	assert.Empty(t, warnings)
	assert.True(t, events[0].At.Equal(at))
	assert.InDelta(t, 1.5, events[0].Amount, 1e-9)
}

func TestRateFrom(t *testing.T) {
	tests := []struct {
		name         string
		pills, hours float64
		want         float64
	}{
		{name: "one pill per twelve hours", pills: 1, hours: 12, want: 1.0 / 12},
		{name: "two pills per day", pills: 2, hours: 24, want: 1.0 / 12},
		{name: "zero hours avoids division", pills: 1, hours: 0, want: 0},
		{name: "zero pills", pills: 0, hours: 12, want: 0},
		{name: "negative hours", pills: 1, hours: -4, want: 0},
		{name: "nan pills", pills: math.NaN(), hours: 12, want: 0},
		{name: "inf hours", pills: 1, hours: math.Inf(1), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RateFrom(tt.pills, tt.hours), 1e-12)
		})
	}
}
