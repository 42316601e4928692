// Package config loads environment configuration from dotenv files and
// exposes it as flat typed getters. Call Load once at startup; every
// getter reads the process environment afterwards.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by MAFC_ENV (or .env by default),
// then loads the corresponding .secret sidecar if it exists. Missing files
// are not an error; real deployments configure via the environment.
func Load() error {
	envFile := os.Getenv("MAFC_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

func AnthropicAPIKey() string {
	return os.Getenv("ANTHROPIC_API_KEY")
}

func SerperAPIKey() string {
	return os.Getenv("SERPER_API_KEY")
}

// WikiDumpURL returns the base URL of the local Wikipedia dump service.
func WikiDumpURL() string {
	u := os.Getenv("WIKI_DUMP_URL")
	if u == "" {
		return "http://localhost:3500"
	}
	return u
}

// SearchEngine returns the configured search backend.
// Valid values: duckduckgo, google, wiki_dump
func SearchEngine() string {
	e := os.Getenv("SEARCH_ENGINE")
	if e == "" {
		return "duckduckgo"
	}
	return e
}

// MaxSearchSteps bounds the number of search steps per claim.
func MaxSearchSteps() int {
	n, err := strconv.Atoi(os.Getenv("MAX_SEARCH_STEPS"))
	if err != nil || n < 1 {
		return 5
	}
	return n
}

// MaxVerdictRetries is the number of fresh verdict generations after the
// first one.
func MaxVerdictRetries() int {
	n, err := strconv.Atoi(os.Getenv("MAX_VERDICT_RETRIES"))
	if err != nil || n < 0 {
		return 2
	}
	return n
}

// Debug reports whether verbose logging is enabled.
func Debug() bool {
	v, err := strconv.ParseBool(os.Getenv("DEBUG"))
	if err != nil {
		return false
	}
	return v
}
