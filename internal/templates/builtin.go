package templates

import "github.com/huimingz/prgen/pkg/lang"

// Built-in template ids, in menu order
const (
	Frontend = "frontend"
	Backend  = "backend"
	Custom   = "custom"
)

// CreateNewID is the menu sentinel that asks for a new user template
const CreateNewID = "create-new"

type builtin struct {
	id     string
	labels map[lang.Locale]string
	bodies map[lang.Locale]Template
}

var builtins = []builtin{
	{
		id: Frontend,
		labels: map[lang.Locale]string{
			lang.Spanish: "🎨 Frontend - Cambios UI/UX",
			lang.English: "🎨 Frontend - UI/UX changes",
		},
		bodies: map[lang.Locale]Template{
			lang.Spanish: {
				Name: "Frontend",
				Structure: `**Ticket:** {{TICKET_OR_SKIP}}
**Qué se hizo:** [Descripción de lo que realizaste]
**Datos necesarios para probar:**
**Cómo probar:**
**Qué falta:**
**Capturas:**`,
				Locale: lang.Spanish,
			},
			lang.English: {
				Name: "Frontend",
				Structure: `**Ticket:** {{TICKET_OR_SKIP}}
**What was done:** [Description of what you implemented]
**Data needed for testing:**
**How to test:**
**What's missing:**
**Screenshots:**`,
				Locale: lang.English,
			},
		},
	},
	{
		id: Backend,
		labels: map[lang.Locale]string{
			lang.Spanish: "⚙️  Backend - Cambios API/Database",
			lang.English: "⚙️  Backend - API/Database changes",
		},
		bodies: map[lang.Locale]Template{
			lang.Spanish: {
				Name: "Backend",
				Structure: `**Ticket:** {{TICKET_OR_SKIP}}
**Qué se hizo:** [Descripción de los cambios realizados]
**Migraciones:** [¿Se modificaron migraciones?]`,
				Locale: lang.Spanish,
			},
			lang.English: {
				Name: "Backend",
				Structure: `**Ticket:** {{TICKET_OR_SKIP}}
**What was done:** [Description of the changes made]
**Migrations:** [Were migrations modified?]`,
				Locale: lang.English,
			},
		},
	},
	{
		id: Custom,
		labels: map[lang.Locale]string{
			lang.Spanish: "📦 Personalizado - Propósito general",
			lang.English: "📦 Custom - General purpose",
		},
		bodies: map[lang.Locale]Template{
			lang.Spanish: {
				Name: "Personalizado",
				Structure: `Eres un redactor técnico creando la descripción de un Pull Request.

Analiza el Git diff proporcionado y genera una **descripción de PR concisa y profesional** siguiendo esta estructura:

## 🎯 Propósito
Resumen breve de lo que logra este PR (2-3 oraciones)

## 📝 Cambios
- Lista los cambios principales
- Sé específico sobre lo que se agregó, modificó o eliminó
- Agrupa los cambios relacionados

## 🧪 Pruebas
- Describe cómo se probaron estos cambios
- Menciona los casos borde cubiertos

## 🔗 Issues relacionados
_Lista los números de issues relacionados_

Mantén la descripción técnica pero legible, alrededor de 200-300 palabras en total.`,
				Locale: lang.Spanish,
			},
			lang.English: {
				Name: "Custom",
				Structure: `You are a technical writer creating a Pull Request description.

Analyze the Git diff provided and generate a **concise, professional PR description** following this structure:

## 🎯 Purpose
Brief overview of what this PR accomplishes (2-3 sentences)

## 📝 Changes
- List the main changes made
- Be specific about what was added, modified, or removed
- Group related changes together

## 🧪 Testing
- Describe how these changes were tested
- Mention any edge cases covered

## 🔗 Related Issues
_List any related issue numbers_

Keep the description technical but readable, around 200-300 words total.`,
				Locale: lang.English,
			},
		},
	},
}

// BuiltinIDs returns the built-in template ids in menu order
func BuiltinIDs() []string {
	ids := make([]string, 0, len(builtins))
	for _, b := range builtins {
		ids = append(ids, b.id)
	}
	return ids
}

// IsBuiltin reports whether id names a built-in template
func IsBuiltin(id string) bool {
	_, ok := findBuiltin(id)
	return ok
}

func findBuiltin(id string) (builtin, bool) {
	for _, b := range builtins {
		if b.id == id {
			return b, true
		}
	}
	return builtin{}, false
}
