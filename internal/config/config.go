// Package config holds the global configuration resolved from the
// config file, environment and CLI flags.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// HistoryFile is the path of the persisted recent-query list.
	HistoryFile string
	// HistorySize caps the recent-query list.
	HistorySize int
	// SearchTimeout bounds a single provider HTTP call.
	SearchTimeout time.Duration
	// MaxResults caps multi-result searches.
	MaxResults int
	// GoogleBooksAPIKey is the optional API key for Google Books.
	GoogleBooksAPIKey string
)

// InitConfig initializes the global configuration from viper.
func InitConfig() {
	viper.SetDefault("history.file", "./history.json")
	viper.SetDefault("history.size", 10)
	viper.SetDefault("search.timeout", "10s")
	viper.SetDefault("search.maxresults", 20)

	HistoryFile = viper.GetString("history.file")
	HistorySize = viper.GetInt("history.size")
	SearchTimeout = viper.GetDuration("search.timeout")
	MaxResults = viper.GetInt("search.maxresults")
	GoogleBooksAPIKey = viper.GetString("googlebooks.api_key")
}

// SetHistoryFile overrides the history file path.
func SetHistoryFile(path string) {
	if path != "" {
		HistoryFile = path
	}
}

// SetSearchTimeout overrides the per-request timeout.
func SetSearchTimeout(d time.Duration) {
	if d > 0 {
		SearchTimeout = d
	}
}
