package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/huimingz/prgen/internal/llm"
	"github.com/huimingz/prgen/internal/log"
	"github.com/huimingz/prgen/pkg/lang"
)

// maxKeyAttempts bounds the interactive API key prompts
const maxKeyAttempts = 3

func isCredentialError(err error) bool {
	return errors.Is(err, llm.ErrCredentialMissing) || errors.Is(err, llm.ErrCredentialInvalid)
}

// initializeClient resolves the API key and initializes client with it.
// In interactive mode a missing or rejected key is asked for and saved.
func (a *app) initializeClient(ctx context.Context, client *llm.Client, explicit string, interactive bool) error {
	pref := a.loadPreference()

	key, source, err := llm.ResolveAPIKey(explicit, pref.APIKey, a.cfg.APIKey, a.getenv)
	if err == nil {
		if err = client.Initialize(ctx, key); err == nil {
			log.Debug("Using API key from %s (%s)", source, log.MaskKey(key))
			if interactive {
				_ = a.printer.PrintSuccess(a.msgs.APIKeyLoaded)
			}
			return nil
		}
	}

	if !interactive || !isCredentialError(err) {
		return err
	}

	if errors.Is(err, llm.ErrCredentialMissing) {
		_ = a.printer.PrintInfo(a.msgs.APIKeyRequired)
		_ = a.printer.PrintDim(a.msgs.APIKeyFromURL)
		_ = a.printer.PrintDim(a.msgs.APIKeySavedLocally)
	} else {
		_ = a.printer.PrintWarning(fmt.Sprintf("%s (%v)", a.msgs.InvalidAPIKey, err))
	}

	return a.promptForAPIKey(ctx, client)
}

// promptForAPIKey asks for a key until one initializes the client, then
// saves it. It gives up after maxKeyAttempts.
func (a *app) promptForAPIKey(ctx context.Context, client *llm.Client) error {
	var lastErr error
	for attempt := 1; attempt <= maxKeyAttempts; attempt++ {
		key, err := a.prompter.Input(a.msgs.APIKeyPrompt, "")
		if err != nil {
			return err
		}

		lastErr = client.Initialize(ctx, key)
		if lastErr == nil {
			if err := a.prefs.SaveAPIKey(key); err != nil {
				return err
			}
			_ = a.printer.PrintSuccess(a.msgs.APIKeySaved)
			return nil
		}
		if !isCredentialError(lastErr) {
			return lastErr
		}

		log.Debug("API key attempt %d/%d failed: %v", attempt, maxKeyAttempts, lastErr)
		_ = a.printer.PrintWarning(fmt.Sprintf("%s (%v)", a.msgs.InvalidAPIKey, lastErr))
	}
	return lastErr
}

// setAPIKey asks for a new key, validates it and saves it
func (a *app) setAPIKey(ctx context.Context) error {
	_ = a.printer.PrintInfo(a.msgs.SetAPIKeyTitle)
	_ = a.printer.PrintDim(a.msgs.APIKeyFromURL)

	client := llm.NewClient(llm.ClientOptions{
		Provider:          a.provider,
		ValidateKeyFormat: a.cfg.ValidateKeyFormat,
	})
	return a.promptForAPIKey(ctx, client)
}

// clearAPIKey removes the saved key after a localized confirmation
func (a *app) clearAPIKey() error {
	_ = a.printer.PrintInfo(a.msgs.ClearAPIKeyTitle)

	if a.loadPreference().APIKey == "" {
		_ = a.printer.PrintDim(a.msgs.NoAPIKeyToClear)
		return nil
	}

	ok, err := a.prompter.Confirm(a.msgs.ConfirmClearAPIKey, a.msgs.ConfirmHint, a.msgs.YesTokens)
	if err != nil {
		return err
	}
	if !ok {
		_ = a.printer.PrintDim(a.msgs.OperationCancelled)
		return nil
	}

	if _, err := a.prefs.ClearAPIKey(); err != nil {
		return err
	}
	_ = a.printer.PrintSuccess(a.msgs.APIKeyCleared)
	return nil
}

// changeLanguage lets the user pick a locale and saves it
func (a *app) changeLanguage() error {
	locales := lang.Supported()
	options := make([]string, 0, len(locales))
	current := 0
	for i, l := range locales {
		options = append(options, fmt.Sprintf("%s %s", l.Flag(), l.DisplayName()))
		if l == a.locale {
			current = i
		}
	}

	idx, err := a.prompter.Select(a.msgs.SelectLanguage, options, current)
	if err != nil {
		return err
	}

	chosen := locales[idx]
	if err := a.prefs.SaveLocale(chosen); err != nil {
		return err
	}

	a.useLocale(chosen)
	_ = a.printer.PrintSuccess(fmt.Sprintf(a.msgs.LanguageChanged, chosen.DisplayName()))
	return nil
}
