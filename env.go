package main

import (
	"os"
	"strings"

	"github.com/KaiqueGovani/legotris/pkg/scores"
)

const (
	envScoreAPIURL = "LEGOTRIS_SCORE_API_URL"
	envScoreAPIKey = "LEGOTRIS_SCORE_API_KEY"
	envScoreSync   = "LEGOTRIS_SCORE_SYNC"
)

// Set with -ldflags "-X main.defaultScoreAPIURL=..." for release builds.
var (
	defaultScoreAPIURL string
	defaultScoreAPIKey string
)

func loadEmbeddedEnv() {
	setDefaultEnv(envScoreAPIURL, defaultScoreAPIURL)
	setDefaultEnv(envScoreAPIKey, defaultScoreAPIKey)
}

func setDefaultEnv(key, value string) {
	if value == "" {
		return
	}
	if _, exists := os.LookupEnv(key); !exists {
		_ = os.Setenv(key, value)
	}
}

// scoreRemoteFromEnv returns nil unless sync is switched on and a service
// URL is known.
func scoreRemoteFromEnv() *scores.Remote {
	if !strings.EqualFold(strings.TrimSpace(os.Getenv(envScoreSync)), "true") {
		return nil
	}
	return scores.NewRemote(os.Getenv(envScoreAPIURL), os.Getenv(envScoreAPIKey))
}
