// Package log prints debug traces and status messages to stderr.
package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
)

// maxPromptChars caps how much of a prompt block a debug trace shows
const maxPromptChars = 2000

var (
	debugMode           = false
	output    io.Writer = os.Stderr
)

// SetDebugMode enables or disables debug mode
func SetDebugMode(enabled bool) {
	debugMode = enabled
}

// IsDebugMode returns whether debug mode is enabled
func IsDebugMode() bool {
	return debugMode
}

// SetOutput sets the output writer for log messages
func SetOutput(w io.Writer) {
	output = w
}

// Debug prints debug messages (only in debug mode)
func Debug(format string, args ...interface{}) {
	if debugMode {
		color.New(color.FgHiBlack).Fprintf(output, "[DEBUG] "+format+"\n", args...)
	}
}

// DebugConfig prints a value as indented JSON in debug mode. Fields that
// look like credentials are masked.
func DebugConfig(label string, config interface{}) {
	if !debugMode {
		return
	}
	gray := color.New(color.FgHiBlack)

	data, err := json.Marshal(config)
	if err != nil {
		gray.Fprintf(output, "[DEBUG] %s: (failed to serialize: %v)\n", label, err)
		return
	}

	var generic interface{}
	if err := json.Unmarshal(data, &generic); err == nil {
		if masked, err := json.MarshalIndent(maskSecrets(generic), "", "  "); err == nil {
			data = masked
		}
	}
	gray.Fprintf(output, "[DEBUG] %s:\n%s\n", label, string(data))
}

// DebugPrompt logs an assembled prompt block in debug mode
func DebugPrompt(label string, text string) {
	if debugMode {
		color.New(color.FgCyan).Fprintf(output, "[DEBUG] %s (%d chars):\n", label, utf8.RuneCountInString(text))
		fmt.Fprintf(output, "%s\n", truncate(text, maxPromptChars))
	}
}

// DebugTokenUsage logs token usage in debug mode
func DebugTokenUsage(promptTokens, completionTokens, totalTokens int) {
	if debugMode {
		color.New(color.FgMagenta).Fprintf(output, "[DEBUG] Token Usage: prompt=%d, completion=%d, total=%d\n",
			promptTokens, completionTokens, totalTokens)
	}
}

// DebugDuration logs execution duration in debug mode
func DebugDuration(operation string, duration time.Duration) {
	if debugMode {
		color.New(color.FgBlue).Fprintf(output, "[DEBUG] %s took %v\n", operation, duration)
	}
}

// Error prints error messages
func Error(format string, args ...interface{}) {
	color.New(color.FgRed).Fprintf(output, "❌ Error: "+format+"\n", args...)
}

// Warn prints warning messages
func Warn(format string, args ...interface{}) {
	color.New(color.FgYellow).Fprintf(output, "⚠️  "+format+"\n", args...)
}

// MaskKey hides all but the first and last four characters of a credential
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}

func isSecretField(name string) bool {
	n := strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(name))
	return strings.HasSuffix(n, "apikey") || strings.HasSuffix(n, "token") || strings.HasSuffix(n, "secret")
}

// maskSecrets walks decoded JSON and masks credential-like string fields.
// Values that are still ${VAR} references are left as they are.
func maskSecrets(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, child := range val {
			if s, ok := child.(string); ok && isSecretField(k) && !strings.HasPrefix(s, "$") {
				val[k] = MaskKey(s)
				continue
			}
			val[k] = maskSecrets(child)
		}
		return val
	case []interface{}:
		for i, child := range val {
			val[i] = maskSecrets(child)
		}
		return val
	default:
		return v
	}
}

// truncate shortens s to maxLen runes and notes how much was cut
func truncate(s string, maxLen int) string {
	n := utf8.RuneCountInString(s)
	if n <= maxLen {
		return s
	}
	runes := []rune(s)
	return fmt.Sprintf("%s... (%d more chars)", string(runes[:maxLen]), n-maxLen)
}
