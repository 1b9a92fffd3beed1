// Package templates resolves PR description templates: the built-in
// categories for each locale plus the user's own templates.
package templates

import (
	"errors"
	"fmt"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/huimingz/prgen/internal/log"
	"github.com/huimingz/prgen/internal/store"
	"github.com/huimingz/prgen/pkg/lang"
)

// TicketPlaceholder marks where the ticket reference goes in a structure
const TicketPlaceholder = "{{TICKET_OR_SKIP}}"

var (
	// ErrTemplateNotFound is returned when an id matches no template
	ErrTemplateNotFound = errors.New("template not found")

	// ErrDuplicateName is returned when a user template name is already taken
	ErrDuplicateName = errors.New("template name already exists")

	// ErrInvalidTemplate is returned for a blank name or a malformed structure
	ErrInvalidTemplate = errors.New("invalid template")
)

// Template is a named structure the model is asked to fill in
type Template struct {
	Name      string      `json:"name"`
	Structure string      `json:"structure"`
	Locale    lang.Locale `json:"language,omitempty"`
}

// Choice is one entry of the template menu
type Choice struct {
	DisplayName string
	ID          string
}

// DuplicatePolicy decides what Create does with an existing user template name
type DuplicatePolicy string

const (
	PolicyOverwrite DuplicatePolicy = "overwrite"
	PolicyReject    DuplicatePolicy = "reject"
)

// ParsePolicy parses a duplicate policy name. Blank means overwrite.
func ParsePolicy(s string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyOverwrite:
		return PolicyOverwrite, nil
	case PolicyReject:
		return PolicyReject, nil
	default:
		return "", fmt.Errorf("unsupported template policy: %s (expected overwrite or reject)", s)
	}
}

type userSet = orderedmap.OrderedMap[string, Template]

// Registry resolves built-in and user templates
type Registry struct {
	store  store.Store
	policy DuplicatePolicy
}

// Option configures a Registry
type Option func(*Registry)

// WithPolicy sets the duplicate-name policy
func WithPolicy(p DuplicatePolicy) Option {
	return func(r *Registry) {
		r.policy = p
	}
}

// NewRegistry creates a registry whose user templates live in s
func NewRegistry(s store.Store, opts ...Option) *Registry {
	r := &Registry{store: s, policy: PolicyOverwrite}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the template for id. Built-ins for the locale win over user
// templates of the same name.
func (r *Registry) Resolve(id string, locale lang.Locale) (Template, error) {
	id = strings.TrimSpace(id)
	if b, ok := findBuiltin(id); ok {
		return b.bodies[locale.OrDefault()], nil
	}

	if t, ok := r.load().Get(id); ok {
		return t, nil
	}
	return Template{}, fmt.Errorf("%w: %q (built-in: %s)", ErrTemplateNotFound, id, strings.Join(BuiltinIDs(), ", "))
}

// ListAvailable returns the menu entries: built-ins, user templates in saved
// order, then the create-new sentinel.
func (r *Registry) ListAvailable(locale lang.Locale) []Choice {
	locale = locale.OrDefault()
	msgs := lang.MessagesFor(locale)

	choices := make([]Choice, 0, len(builtins)+1)
	for _, b := range builtins {
		choices = append(choices, Choice{DisplayName: b.labels[locale], ID: b.id})
	}

	users := r.load()
	for pair := users.Oldest(); pair != nil; pair = pair.Next() {
		choices = append(choices, Choice{
			DisplayName: fmt.Sprintf("✨ %s - %s", pair.Key, msgs.UserTemplateSuffix),
			ID:          pair.Key,
		})
	}

	return append(choices, Choice{DisplayName: msgs.CreateCustomTemplate, ID: CreateNewID})
}

// Create saves a user template
func (r *Registry) Create(name, structure string) (Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Template{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidTemplate)
	}
	if name == CreateNewID {
		return Template{}, fmt.Errorf("%w: %q is reserved", ErrInvalidTemplate, name)
	}
	if n := strings.Count(structure, TicketPlaceholder); n > 1 {
		return Template{}, fmt.Errorf("%w: %s appears %d times, at most once is allowed",
			ErrInvalidTemplate, TicketPlaceholder, n)
	}
	if IsBuiltin(name) {
		return Template{}, fmt.Errorf("%w: %q is a built-in template", ErrDuplicateName, name)
	}

	users := r.load()
	if _, exists := users.Get(name); exists && r.policy == PolicyReject {
		return Template{}, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	t := Template{Name: name, Structure: structure}
	users.Set(name, t)
	if err := r.store.Save(users); err != nil {
		return Template{}, fmt.Errorf("failed to save user template: %w", err)
	}
	log.Debug("Saved user template %q (%d total)", name, users.Len())
	return t, nil
}

// Delete removes a user template. Deleting a missing name is a no-op.
func (r *Registry) Delete(name string) error {
	name = strings.TrimSpace(name)
	users := r.load()
	if _, present := users.Delete(name); !present {
		return nil
	}
	if err := r.store.Save(users); err != nil {
		return fmt.Errorf("failed to delete user template: %w", err)
	}
	return nil
}

// UserTemplates returns the user templates in saved order
func (r *Registry) UserTemplates() []Template {
	users := r.load()
	out := make([]Template, 0, users.Len())
	for pair := users.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// load reads the user set. Unreadable data degrades to an empty set.
func (r *Registry) load() *userSet {
	users := orderedmap.New[string, Template]()
	if err := r.store.Load(users); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Warn("Could not load user templates, using built-ins only: %v", err)
		}
		return orderedmap.New[string, Template]()
	}
	return users
}
