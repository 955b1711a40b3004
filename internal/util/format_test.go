package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{name: "whole unit", amount: 1, want: "1"},
		{name: "half unit", amount: 0.5, want: "0.5"},
		{name: "quarter unit", amount: 1.25, want: "1.25"},
		{name: "zero", amount: 0, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount))
		})
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		name  string
		hours float64
		want  string
	}{
		{name: "hours and minutes", hours: 3.5, want: "3h 30m"},
		{name: "under an hour", hours: 0.25, want: "15m"},
		{name: "negative uses magnitude", hours: -1.5, want: "1h 30m"},
		{name: "zero", hours: 0, want: "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatHours(tt.hours))
		})
	}
}

func TestFormatHoursOffset(t *testing.T) {
	assert.Equal(t, "in 2h 0m", FormatHoursOffset(2))
	assert.Equal(t, "2h 0m ago", FormatHoursOffset(-2))
	assert.Equal(t, "in 0m", FormatHoursOffset(0))
}
