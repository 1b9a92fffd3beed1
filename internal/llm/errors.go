package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrCredentialMissing is returned when no API key is available
	ErrCredentialMissing = errors.New("gemini API key not provided")

	// ErrCredentialInvalid is returned for a malformed key or one the provider rejected
	ErrCredentialInvalid = errors.New("invalid API key")

	// ErrClientInit is returned when the chat model cannot be constructed
	ErrClientInit = errors.New("failed to initialize Gemini client")

	// ErrNotReady is returned when generating before Initialize succeeded
	ErrNotReady = errors.New("AI client not initialized")

	// ErrEmptyResponse is returned when the provider answers with no text
	ErrEmptyResponse = errors.New("no response generated from AI")

	// ErrProvider wraps any other provider failure
	ErrProvider = errors.New("provider error")
)

// HTTPStatusError is an interface for errors that have HTTP status codes
type HTTPStatusError interface {
	error
	HTTPStatusCode() int
}

// credentialKeywords are fragments of provider messages that mean the key was rejected
var credentialKeywords = []string{
	"api key not valid",
	"api_key_invalid",
	"invalid api key",
	"permission_denied",
	"unauthenticated",
	"error 401",
	"error 403",
}

// classifyProviderError maps a raw provider failure to ErrCredentialInvalid or ErrProvider
func classifyProviderError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrProvider, err)
	}

	if statusErr, ok := err.(HTTPStatusError); ok {
		if isCredentialStatus(statusErr.HTTPStatusCode()) {
			return fmt.Errorf("%w: %v", ErrCredentialInvalid, err)
		}
		return fmt.Errorf("%w: %v", ErrProvider, err)
	}

	errMsg := strings.ToLower(err.Error())
	for _, keyword := range credentialKeywords {
		if strings.Contains(errMsg, keyword) {
			return fmt.Errorf("%w: %v", ErrCredentialInvalid, err)
		}
	}

	return fmt.Errorf("%w: %v", ErrProvider, err)
}

func isCredentialStatus(statusCode int) bool {
	return statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden
}
