package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestInitConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	InitConfig()

	assert.Equal(t, "./history.json", HistoryFile)
	assert.Equal(t, 10, HistorySize)
	assert.Equal(t, 10*time.Second, SearchTimeout)
	assert.Equal(t, 20, MaxResults)
}

func TestSetHistoryFile(t *testing.T) {
	// Save the original value to restore after the test
	originalValue := HistoryFile

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "set to a path",
			input:    "/tmp/history.json",
			expected: "/tmp/history.json",
		},
		{
			name:     "empty value is ignored",
			input:    "",
			expected: "/tmp/history.json",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			SetHistoryFile(tc.input)

			assert.Equal(t, tc.expected, HistoryFile)
		})
	}

	// Restore the original value
	HistoryFile = originalValue
}

func TestSetSearchTimeout(t *testing.T) {
	originalValue := SearchTimeout

	testCases := []struct {
		name     string
		input    time.Duration
		expected time.Duration
	}{
		{
			name:     "set to five seconds",
			input:    5 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "zero value is ignored",
			input:    0,
			expected: 5 * time.Second,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			SetSearchTimeout(tc.input)

			assert.Equal(t, tc.expected, SearchTimeout)
		})
	}

	SearchTimeout = originalValue
}
