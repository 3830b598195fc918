package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("Europe/Istanbul"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus"))
}

func TestLocation_Fallbacks(t *testing.T) {
	tests := []struct {
		name     string
		tz       string
		fallback string
		want     string
	}{
		{"provider zone wins", "Europe/Berlin", "America/New_York", "Europe/Berlin"},
		{"configured default", "", "America/New_York", "America/New_York"},
		{"unknown provider zone", "Mars/Olympus", "America/New_York", "America/New_York"},
		{"nothing configured", "", "", DefaultTimezone},
		{"bad default", "", "Nowhere/Else", DefaultTimezone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Location(tt.tz, tt.fallback).String())
		})
	}
}
