package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huimingz/prgen/internal/config"
	"github.com/huimingz/prgen/internal/git"
	"github.com/huimingz/prgen/internal/llm"
	"github.com/huimingz/prgen/internal/prefs"
	"github.com/huimingz/prgen/internal/store"
	"github.com/huimingz/prgen/internal/templates"
	"github.com/huimingz/prgen/internal/ui"
	"github.com/huimingz/prgen/pkg/lang"
)

const testKey = "AIzaSyA1234567890abcdefghijklmnopq"

type fakeExecutor struct {
	current   string
	target    string
	stat      string
	content   string
	diffCalls int
	notRepo   bool
}

func (f *fakeExecutor) IsRepository(context.Context) bool { return !f.notRepo }

func (f *fakeExecutor) CurrentBranch(context.Context) (string, error) {
	return f.current, nil
}

func (f *fakeExecutor) BranchExists(_ context.Context, branch string) bool {
	return branch == f.target
}

func (f *fakeExecutor) Diff(ctx context.Context, target string) (*git.DiffResult, error) {
	f.diffCalls++
	if !f.BranchExists(ctx, target) {
		return nil, fmt.Errorf("%w: %q", git.ErrNoSuchBranch, target)
	}
	return &git.DiffResult{
		CurrentBranch: f.current,
		TargetBranch:  target,
		DiffStat:      f.stat,
		DiffContent:   f.content,
	}, nil
}

type fakeChatModel struct {
	replies []string
	inputs  []string
}

func (m *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	m.inputs = append(m.inputs, input[0].Content)
	reply := m.replies[0]
	if len(m.replies) > 1 {
		m.replies = m.replies[1:]
	}
	return &schema.Message{Role: schema.Assistant, Content: reply}, nil
}

func (m *fakeChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

type fakeProvider struct {
	model *fakeChatModel
	keys  []string
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) CreateChatModel(_ context.Context, apiKey string) (model.BaseChatModel, error) {
	p.keys = append(p.keys, apiKey)
	return p.model, nil
}

type recordingEffects struct {
	copied  []string
	saved   map[string]string
	printed []string
}

func (e *recordingEffects) CopyToClipboard(text string) error {
	e.copied = append(e.copied, text)
	return nil
}

func (e *recordingEffects) SaveToFile(path, text string) error {
	if e.saved == nil {
		e.saved = map[string]string{}
	}
	e.saved[path] = text
	return nil
}

func (e *recordingEffects) Print(text string) error {
	e.printed = append(e.printed, text)
	return nil
}

type testApp struct {
	*app
	prefStore *store.MemoryStore
	tplStore  *store.MemoryStore
	git       *fakeExecutor
	model     *fakeChatModel
	provider  *fakeProvider
	effects   *recordingEffects
	out       *bytes.Buffer
	errOut    *bytes.Buffer
}

func newTestApp(t *testing.T, input string) *testApp {
	t.Helper()

	ta := &testApp{
		prefStore: store.NewMemoryStore(),
		tplStore:  store.NewMemoryStore(),
		git: &fakeExecutor{
			current: "feature",
			target:  "main",
			stat:    " api/users.go | 12 ++++++++++--\n 1 file changed, 10 insertions(+), 2 deletions(-)",
			content: "diff --git a/api/users.go b/api/users.go\n+func CreateUser() {}",
		},
		model:   &fakeChatModel{replies: []string{"**Ticket:** BE-123\n**What was done:**\n- Added user creation"}},
		effects: &recordingEffects{},
		out:     &bytes.Buffer{},
		errOut:  &bytes.Buffer{},
	}
	ta.provider = &fakeProvider{model: ta.model}

	ta.app = &app{
		cfg:      config.Default(),
		prefs:    prefs.NewManager(ta.prefStore),
		registry: templates.NewRegistry(ta.tplStore),
		git:      ta.git,
		provider: ta.provider,
		prompter: ui.NewPrompter(strings.NewReader(input), ta.out),
		printer:  ui.NewStreamPrinter(ta.out, ui.WithColor(false)),
		effects:  ta.effects,
		getenv:   func(string) string { return "" },
		out:      ta.out,
		errOut:   ta.errOut,
	}
	ta.useLocale(lang.English)
	return ta
}

func (ta *testApp) savedPreference(t *testing.T) prefs.Preference {
	t.Helper()
	pref, err := prefs.NewManager(ta.prefStore).Load()
	require.NoError(t, err)
	return pref
}

func TestResolveLocale(t *testing.T) {
	withLanguage := func(l string) *config.Config {
		cfg := config.Default()
		cfg.Language = l
		return cfg
	}

	tests := []struct {
		name    string
		flag    string
		saved   lang.Locale
		cfg     *config.Config
		want    lang.Locale
		wantErr bool
	}{
		{name: "default", cfg: config.Default(), want: lang.Spanish},
		{name: "config", cfg: withLanguage("en"), want: lang.English},
		{name: "saved beats config", saved: lang.Spanish, cfg: withLanguage("en"), want: lang.Spanish},
		{name: "flag beats saved", flag: "en", saved: lang.Spanish, cfg: config.Default(), want: lang.English},
		{name: "flag with region", flag: "es-MX", cfg: withLanguage("en"), want: lang.Spanish},
		{name: "invalid saved ignored", saved: lang.Locale("fr"), cfg: config.Default(), want: lang.Spanish},
		{name: "unsupported flag", flag: "fr", cfg: config.Default(), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveLocale(tt.flag, tt.saved, tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApp_SetLocale_UsesSavedPreference(t *testing.T) {
	ta := newTestApp(t, "")
	require.NoError(t, ta.prefs.SaveLocale(lang.Spanish))

	require.NoError(t, ta.setLocale(""))
	assert.Equal(t, lang.Spanish, ta.locale)
	assert.Equal(t, "descripcion-pr.txt", ta.defaultFilename())
}

func TestApp_DefaultFilename_FromConfig(t *testing.T) {
	ta := newTestApp(t, "")
	assert.Equal(t, "pr-description.txt", ta.defaultFilename())

	ta.cfg.OutputFile = "PR.md"
	assert.Equal(t, "PR.md", ta.defaultFilename())
}

func TestGenerate_DirectConsole(t *testing.T) {
	ta := newTestApp(t, "")

	err := ta.generate(context.Background(), runOptions{
		Target:    "main",
		Template:  "backend",
		Ticket:    "BE-123",
		TicketSet: true,
		Output:    "console",
		APIKey:    testKey,
	})
	require.NoError(t, err)

	require.Len(t, ta.model.inputs, 1)
	sent := ta.model.inputs[0]
	assert.Contains(t, sent, "BE-123")
	assert.Contains(t, sent, "feature → main")
	assert.Contains(t, sent, "+func CreateUser() {}")
	assert.NotContains(t, sent, templates.TicketPlaceholder)

	assert.Equal(t, []string{"**Ticket:** BE-123\n**What was done:**\n- Added user creation"}, ta.effects.printed)
	assert.Equal(t, []string{testKey}, ta.provider.keys)

	// status lines go to stderr in direct mode
	assert.Empty(t, ta.out.String())
	assert.Contains(t, ta.errOut.String(), "Current branch: feature")
	assert.Contains(t, ta.errOut.String(), "Using Backend template")
}

func TestGenerate_DirectFileUsesDefaultName(t *testing.T) {
	ta := newTestApp(t, "")

	err := ta.generate(context.Background(), runOptions{
		Target:   "main",
		Template: "frontend",
		Output:   "file",
		APIKey:   testKey,
	})
	require.NoError(t, err)

	require.Contains(t, ta.effects.saved, "pr-description.txt")
	assert.Contains(t, ta.errOut.String(), "Saved to pr-description.txt")
	// no ticket flag: the placeholder line is dropped
	assert.NotContains(t, ta.model.inputs[0], templates.TicketPlaceholder)
}

func TestGenerate_DirectNamedFileAndCustomFallback(t *testing.T) {
	ta := newTestApp(t, "")

	err := ta.generate(context.Background(), runOptions{
		Target: "main",
		Output: "file",
		File:   "out/PR.md",
		APIKey: testKey,
	})
	require.NoError(t, err)

	assert.Contains(t, ta.effects.saved, "out/PR.md")
	assert.Contains(t, ta.errOut.String(), "Using Custom template")
}

func TestGenerate_DirectClipboardWithExtraInstructions(t *testing.T) {
	ta := newTestApp(t, "")

	err := ta.generate(context.Background(), runOptions{
		Target:       "main",
		Template:     "custom",
		Output:       "clipboard",
		APIKey:       testKey,
		Instructions: "Mention the feature flag.",
	})
	require.NoError(t, err)

	assert.Len(t, ta.effects.copied, 1)
	assert.Contains(t, ta.model.inputs[0], "Mention the feature flag.")
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		opts      runOptions
		notRepo   bool
		wantErr   error
		wantMsg   string
		wantDiffs int
	}{
		{
			name:    "missing credential in direct mode",
			opts:    runOptions{Target: "main", Output: "console"},
			wantErr: llm.ErrCredentialMissing,
		},
		{
			name:    "malformed credential in direct mode",
			opts:    runOptions{Target: "main", Output: "console", APIKey: "not-a-key"},
			wantErr: llm.ErrCredentialInvalid,
		},
		{
			name:    "outside a repository",
			opts:    runOptions{Target: "main", Output: "console", APIKey: testKey},
			notRepo: true,
			wantErr: git.ErrNotRepository,
		},
		{
			name:      "unknown branch",
			opts:      runOptions{Target: "release", Output: "console", APIKey: testKey},
			wantErr:   git.ErrNoSuchBranch,
			wantDiffs: 1,
		},
		{
			name:      "unknown template in direct mode",
			opts:      runOptions{Target: "main", Template: "nope", Output: "console", APIKey: testKey},
			wantErr:   templates.ErrTemplateNotFound,
			wantDiffs: 1,
		},
		{
			name:    "unsupported output mode",
			opts:    runOptions{Target: "main", Output: "printer", APIKey: testKey},
			wantMsg: "unsupported output mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t, "")
			ta.git.notRepo = tt.notRepo

			err := ta.generate(context.Background(), tt.opts)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
			assert.Equal(t, tt.wantDiffs, ta.git.diffCalls)
			assert.Empty(t, ta.model.inputs)
		})
	}
}

func TestGenerate_CredentialFromEnvironment(t *testing.T) {
	ta := newTestApp(t, "")
	ta.getenv = func(key string) string {
		if key == llm.APIKeyEnv {
			return testKey
		}
		return ""
	}

	err := ta.generate(context.Background(), runOptions{Target: "main", Template: "custom", Output: "console"})
	require.NoError(t, err)
	assert.Equal(t, []string{testKey}, ta.provider.keys)
}

func TestGenerate_NoChanges(t *testing.T) {
	ta := newTestApp(t, "")
	ta.git.stat = ""
	ta.git.content = ""

	err := ta.generate(context.Background(), runOptions{Target: "main", Output: "console", APIKey: testKey})
	require.NoError(t, err)

	assert.Contains(t, ta.errOut.String(), "No changes detected between branches")
	assert.Empty(t, ta.model.inputs)
	assert.Empty(t, ta.effects.printed)
}

func TestGenerate_InteractivePromptsForMissingKey(t *testing.T) {
	input := strings.Join([]string{
		"not-a-key", // rejected by the format check
		testKey,
		"2",    // backend
		"BE-9", // ticket
		"4",    // finish
	}, "\n") + "\n"
	ta := newTestApp(t, input)

	err := ta.generate(context.Background(), runOptions{Target: "main"})
	require.NoError(t, err)

	out := ta.out.String()
	assert.Contains(t, out, "Gemini API key required")
	assert.Contains(t, out, "Invalid API key")
	assert.Contains(t, out, "API key configured and saved successfully")
	assert.Contains(t, out, "Using Backend template")
	assert.Contains(t, out, "Using ticket: BE-9")
	assert.Contains(t, out, "Done!")

	assert.Equal(t, testKey, ta.savedPreference(t).APIKey)
	require.Len(t, ta.model.inputs, 1)
	assert.Contains(t, ta.model.inputs[0], "BE-9")
}

func TestGenerate_InteractiveGivesUpAfterThreeKeys(t *testing.T) {
	ta := newTestApp(t, "bad-1\nbad-2\nbad-3\n"+testKey+"\n")

	err := ta.generate(context.Background(), runOptions{Target: "main"})
	assert.ErrorIs(t, err, llm.ErrCredentialInvalid)
	assert.Empty(t, ta.savedPreference(t).APIKey)
	assert.Zero(t, ta.git.diffCalls)
}

func TestGenerate_InteractiveSavedKey(t *testing.T) {
	ta := newTestApp(t, "1\n\n4\n")
	require.NoError(t, ta.prefs.SaveAPIKey(testKey))

	err := ta.generate(context.Background(), runOptions{Target: "main"})
	require.NoError(t, err)

	out := ta.out.String()
	assert.Contains(t, out, "Gemini API key loaded")
	assert.Contains(t, out, "No ticket provided")
	assert.NotContains(t, ta.model.inputs[0], templates.TicketPlaceholder)
}

func TestGenerate_InteractiveUnknownTemplateFallsBackToMenu(t *testing.T) {
	ta := newTestApp(t, "1\n4\n")

	err := ta.generate(context.Background(), runOptions{
		Target:    "main",
		Template:  "nope",
		Ticket:    "FE-1",
		TicketSet: true,
		APIKey:    testKey,
	})
	require.NoError(t, err)

	out := ta.out.String()
	assert.Contains(t, out, `Template "nope" not found`)
	assert.Contains(t, out, "Select a PR template:")
	assert.Contains(t, out, "Using Frontend template")
}

func TestGenerate_InteractiveCreateTemplate(t *testing.T) {
	input := strings.Join([]string{
		"4", // create new
		"Release",
		"**Ticket:** {{TICKET_OR_SKIP}}",
		"**Notes:** [release notes]",
		".",
		"",  // no ticket
		"4", // finish
	}, "\n") + "\n"
	ta := newTestApp(t, input)

	err := ta.generate(context.Background(), runOptions{Target: "main", APIKey: testKey})
	require.NoError(t, err)

	assert.Contains(t, ta.out.String(), "Created and using custom template: Release")
	assert.Contains(t, ta.out.String(), "the line is removed when there is no ticket")

	users := ta.registry.UserTemplates()
	require.Len(t, users, 1)
	assert.Equal(t, "Release", users[0].Name)
	assert.Equal(t, "**Ticket:** {{TICKET_OR_SKIP}}\n**Notes:** [release notes]", users[0].Structure)

	sent := ta.model.inputs[0]
	assert.Contains(t, sent, "**Notes:** [release notes]")
	assert.NotContains(t, sent, templates.TicketPlaceholder)
}

func TestGenerate_InteractiveCreateTemplateDefaultStructure(t *testing.T) {
	// the structure is ended right away with a dot
	ta := newTestApp(t, "4\nQuick\n.\n\n4\n")

	err := ta.generate(context.Background(), runOptions{Target: "main", APIKey: testKey})
	require.NoError(t, err)

	tpl, err := ta.registry.Resolve("Quick", lang.English)
	require.NoError(t, err)
	assert.Equal(t, lang.MessagesFor(lang.English).TemplateStructureDefault, tpl.Structure)
}

func TestGenerate_InteractiveCreateTemplateRejectsBuiltinName(t *testing.T) {
	// "backend" is taken, so the menu comes back and the built-in is picked
	ta := newTestApp(t, "4\nbackend\n**A:** b\n.\n2\n\n4\n")

	err := ta.generate(context.Background(), runOptions{Target: "main", APIKey: testKey})
	require.NoError(t, err)

	assert.Empty(t, ta.registry.UserTemplates())
	assert.Contains(t, ta.out.String(), "❌")
	assert.Contains(t, ta.out.String(), "Using Backend template")
}

func TestGenerate_InteractiveReviewLoop(t *testing.T) {
	input := strings.Join([]string{
		"3", // adjust
		"make it shorter",
		"1",         // copy
		"2",         // save
		"review.md", // filename
		"4",         // finish
	}, "\n") + "\n"
	ta := newTestApp(t, input)
	ta.model.replies = []string{"first draft", "short draft"}

	err := ta.generate(context.Background(), runOptions{
		Target:    "main",
		Template:  "custom",
		TicketSet: true,
		APIKey:    testKey,
	})
	require.NoError(t, err)

	require.Len(t, ta.model.inputs, 2)
	assert.Contains(t, ta.model.inputs[1], "first draft")
	assert.Contains(t, ta.model.inputs[1], "make it shorter")

	assert.Equal(t, []string{"short draft"}, ta.effects.copied)
	assert.Equal(t, map[string]string{"review.md": "short draft"}, ta.effects.saved)
	assert.Contains(t, ta.out.String(), "PR description updated!")
}

func TestSetAPIKey(t *testing.T) {
	ta := newTestApp(t, testKey+"\n")

	require.NoError(t, ta.setAPIKey(context.Background()))
	assert.Equal(t, testKey, ta.savedPreference(t).APIKey)
	assert.Contains(t, ta.out.String(), "Set Gemini API Key")
}

func TestSetAPIKey_FormatCheckDisabled(t *testing.T) {
	ta := newTestApp(t, "short-key\n")
	ta.cfg.ValidateKeyFormat = false

	require.NoError(t, ta.setAPIKey(context.Background()))
	assert.Equal(t, "short-key", ta.savedPreference(t).APIKey)
}

func TestSetAPIKey_SaveFailureSurfaces(t *testing.T) {
	ta := newTestApp(t, testKey+"\n")
	ta.prefStore.FailSave = true

	err := ta.setAPIKey(context.Background())
	assert.ErrorIs(t, err, store.ErrPersistence)
}

func TestClearAPIKey(t *testing.T) {
	tests := []struct {
		name       string
		locale     lang.Locale
		input      string
		savedKey   string
		wantKey    string
		wantOutput string
	}{
		{name: "nothing saved", locale: lang.English, input: "", wantOutput: "No API key found to clear."},
		{name: "english yes", locale: lang.English, input: "yes\n", savedKey: testKey, wantOutput: "API key cleared successfully"},
		{name: "english rejects s", locale: lang.English, input: "s\n", savedKey: testKey, wantKey: testKey, wantOutput: "Operation cancelled."},
		{name: "spanish si", locale: lang.Spanish, input: "sí\n", savedKey: testKey, wantOutput: "API key limpiada exitosamente"},
		{name: "spanish no", locale: lang.Spanish, input: "n\n", savedKey: testKey, wantKey: testKey, wantOutput: "Operación cancelada."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t, tt.input)
			ta.useLocale(tt.locale)
			if tt.savedKey != "" {
				require.NoError(t, ta.prefs.SaveAPIKey(tt.savedKey))
			}

			require.NoError(t, ta.clearAPIKey())
			assert.Equal(t, tt.wantKey, ta.savedPreference(t).APIKey)
			assert.Contains(t, ta.out.String(), tt.wantOutput)
		})
	}
}

func TestChangeLanguage(t *testing.T) {
	ta := newTestApp(t, "1\n")
	require.NoError(t, ta.prefs.SaveAPIKey(testKey))

	require.NoError(t, ta.changeLanguage())

	assert.Equal(t, lang.Spanish, ta.locale)
	pref := ta.savedPreference(t)
	assert.Equal(t, lang.Spanish, pref.Locale)
	assert.Equal(t, testKey, pref.APIKey)

	out := ta.out.String()
	assert.Contains(t, out, "Select your language:")
	assert.Contains(t, out, "🇪🇸 Español")
	assert.Contains(t, out, "Idioma cambiado a Español")
}

func TestShowHelp(t *testing.T) {
	for _, l := range lang.Supported() {
		t.Run(l.String(), func(t *testing.T) {
			ta := newTestApp(t, "")
			ta.useLocale(l)

			require.NoError(t, ta.showHelp(rootCmd))

			out := ta.out.String()
			msgs := lang.MessagesFor(l)
			assert.Contains(t, out, msgs.AppTitle)
			assert.Contains(t, out, "prgen --set-api-key")
			assert.Contains(t, out, "--template")
			assert.Contains(t, out, "--clear-api-key")
		})
	}
}

func TestTemplatesCommands(t *testing.T) {
	ta := newTestApp(t, "")

	t.Run("list without user templates", func(t *testing.T) {
		require.NoError(t, ta.listTemplates())
		out := ta.out.String()
		assert.Contains(t, out, "frontend")
		assert.Contains(t, out, "backend")
		assert.Contains(t, out, "custom")
		assert.Contains(t, out, "No user templates.")
		assert.NotContains(t, out, templates.CreateNewID)
	})

	t.Run("add from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hotfix.md")
		require.NoError(t, os.WriteFile(path, []byte("**Ticket:** {{TICKET_OR_SKIP}}\n**Fix:** [what broke]\n"), 0644))

		require.NoError(t, ta.addTemplate("hotfix", path))
		tpl, err := ta.registry.Resolve("hotfix", lang.English)
		require.NoError(t, err)
		assert.Contains(t, tpl.Structure, "**Fix:**")
	})

	t.Run("add missing file", func(t *testing.T) {
		err := ta.addTemplate("broken", filepath.Join(t.TempDir(), "missing.md"))
		assert.Error(t, err)
	})

	t.Run("list shows user template", func(t *testing.T) {
		ta.out.Reset()
		require.NoError(t, ta.listTemplates())
		assert.Contains(t, ta.out.String(), "✨ hotfix")
	})

	t.Run("show", func(t *testing.T) {
		ta.out.Reset()
		require.NoError(t, ta.showTemplate("hotfix"))
		assert.Contains(t, ta.out.String(), "**Fix:** [what broke]")

		assert.ErrorIs(t, ta.showTemplate("nope"), templates.ErrTemplateNotFound)
	})

	t.Run("delete built-in", func(t *testing.T) {
		assert.ErrorIs(t, ta.deleteTemplate("backend"), templates.ErrInvalidTemplate)
	})

	t.Run("delete missing", func(t *testing.T) {
		assert.ErrorIs(t, ta.deleteTemplate("nope"), templates.ErrTemplateNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, ta.deleteTemplate("hotfix"))
		assert.Empty(t, ta.registry.UserTemplates())
		assert.Contains(t, ta.out.String(), "Template deleted: hotfix")
	})
}

func TestTemplatesAdd_FromPrompt(t *testing.T) {
	ta := newTestApp(t, "**Summary:** [one line]\n.\n")

	require.NoError(t, ta.addTemplate("short", ""))
	tpl, err := ta.registry.Resolve("short", lang.English)
	require.NoError(t, err)
	assert.Equal(t, "**Summary:** [one line]", tpl.Structure)

	empty := newTestApp(t, ".\n")
	assert.ErrorIs(t, empty.addTemplate("empty", ""), templates.ErrInvalidTemplate)
}
