package llm

import (
	"fmt"
	"os"
	"strings"
)

// APIKeyEnv is the environment variable consulted last for the API key
const APIKeyEnv = "GEMINI_API_KEY"

// Source tells where a resolved API key came from
type Source string

const (
	SourceFlag   Source = "flag"
	SourceSaved  Source = "saved"
	SourceConfig Source = "config"
	SourceEnv    Source = "env"
)

// ResolveAPIKey picks the API key by precedence: explicit flag, saved
// preference, config file, then the GEMINI_API_KEY environment variable.
// A configured value may reference environment variables as ${VAR}.
func ResolveAPIKey(explicit, saved, configured string, getenv func(string) string) (string, Source, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	if key := strings.TrimSpace(explicit); key != "" {
		return key, SourceFlag, nil
	}
	if key := strings.TrimSpace(saved); key != "" {
		return key, SourceSaved, nil
	}
	if key := strings.TrimSpace(os.Expand(configured, getenv)); key != "" {
		return key, SourceConfig, nil
	}
	if key := strings.TrimSpace(getenv(APIKeyEnv)); key != "" {
		return key, SourceEnv, nil
	}

	return "", "", fmt.Errorf("%w: set %s, save one with --set-api-key, or pass --api-key", ErrCredentialMissing, APIKeyEnv)
}

// ValidateKeyFormat checks the shape of a Gemini API key
func ValidateKeyFormat(key string) error {
	if !strings.HasPrefix(key, "AIza") || len(key) < 30 {
		return fmt.Errorf("%w: Gemini API keys should start with \"AIza\" and be at least 30 characters long", ErrCredentialInvalid)
	}
	return nil
}
