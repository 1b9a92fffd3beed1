package lang

// Messages is the catalog of user-facing strings for one locale.
// Fields holding a %s verb are meant for fmt.Sprintf.
type Messages struct {
	AppTitle    string
	Description string
	PoweredBy   string
	Help        string

	APIKeyRequired     string
	APIKeyFromURL      string
	APIKeySavedLocally string
	APIKeyPrompt       string
	APIKeySaved        string
	APIKeyLoaded       string
	InvalidAPIKey      string
	SetAPIKeyTitle     string
	ClearAPIKeyTitle   string
	ConfirmClearAPIKey string
	APIKeyCleared      string
	NoAPIKeyToClear    string
	OperationCancelled string

	CurrentBranch     string
	TargetBranch      string
	GeneratingDiff    string
	DiffGenerated     string
	DiffStatistics    string
	NoChangesDetected string

	TicketPrompt     string
	TicketExamples   string
	TicketInput      string
	TicketConfirmed  string
	NoTicketProvided string

	SelectTemplate           string
	UsingTemplate            string
	TemplateNotFound         string
	CreateCustomTemplate     string
	UserTemplateSuffix       string
	TemplateNamePrompt       string
	TemplateStructurePrompt  string
	TemplateStructureHint    string
	TemplateStructureDefault string
	StructureExamples        []string
	CustomTemplateCreated    string
	TemplateDeleted          string
	NoUserTemplates          string

	GeneratingDescription string
	GeneratedDescription  string

	WhatWouldYouLikeToDo string
	CopyToClipboard      string
	SaveToFile           string
	RequestAdjustments   string
	Finish               string
	CopiedToClipboard    string
	EnterFilename        string
	SavedToFile          string
	FilenameDefault      string
	AdjustmentPrompt     string
	AdjustingDescription string
	DescriptionUpdated   string
	Done                 string

	SelectLanguage  string
	LanguageChanged string

	// YesTokens are the accepted affirmative answers for confirmations
	YesTokens []string
	// ConfirmHint is appended to confirmation questions
	ConfirmHint string
}

var catalogs = map[Locale]Messages{
	Spanish: {
		AppTitle:    "🚀 Generador de Descripción de PR",
		Description: "Genera automáticamente descripciones de Pull Request basadas en diffs de Git usando IA",
		PoweredBy:   "Alimentado por Google Gemini para descripciones rápidas y precisas",
		Help: `Uso:
  prgen <branch-destino> [flags]

Ejemplos:
  prgen develop
  prgen main --template backend --ticket "BE-123"
  prgen main -o clipboard -t frontend

⚙️  Gestión de API Key:
  prgen --set-api-key       # Establecer o actualizar API key
  prgen --clear-api-key     # Eliminar API key guardada
  prgen --change-language   # Cambiar idioma

🎨 Plantillas:
  frontend   Incluye: Ticket, Qué se hizo, Datos para probar, Cómo probar, Qué falta, Capturas
  backend    Incluye: Ticket, Qué se hizo, Migraciones
  custom     Propósito general
  Plantillas de usuario: crea las tuyas desde el menú interactivo

💡 Consejos:
  • Asegúrate de estar en un repositorio Git
  • Asegúrate de que tus cambios estén confirmados para diffs precisos
  • Usa números de ticket descriptivos (ej.: FE-123, BE-456)
  • Puedes solicitar ajustes de IA después de la generación inicial

🔑 Configuración:
  Obtén tu API key de Gemini: https://aistudio.google.com/app/apikey`,

		APIKeyRequired:     "❌ API key de Gemini requerida",
		APIKeyFromURL:      "📍 Obtén tu API key de: https://aistudio.google.com/app/apikey",
		APIKeySavedLocally: "La API key se guardará localmente para uso futuro.",
		APIKeyPrompt:       "Ingresa tu API key de Gemini:",
		APIKeySaved:        "API key configurada y guardada exitosamente",
		APIKeyLoaded:       "API key de Gemini cargada",
		InvalidAPIKey:      "API key inválida, por favor ingresa otra",
		SetAPIKeyTitle:     "🔑 Configurar API Key de Gemini",
		ClearAPIKeyTitle:   "🗑️  Limpiar API Key de Gemini",
		ConfirmClearAPIKey: "¿Estás seguro de que quieres limpiar tu API key guardada?",
		APIKeyCleared:      "API key limpiada exitosamente",
		NoAPIKeyToClear:    "No se encontró API key para limpiar.",
		OperationCancelled: "Operación cancelada.",

		CurrentBranch:     "📍 Branch actual:",
		TargetBranch:      "🎯 Branch destino:",
		GeneratingDiff:    "Generando diff...",
		DiffGenerated:     "Diff generado exitosamente",
		DiffStatistics:    "Estadísticas del diff:",
		NoChangesDetected: "No se detectaron cambios entre branches",

		TicketPrompt:     "🎫 Ingresa número y título del ticket Jira/VSTS (opcional):",
		TicketExamples:   "Ejemplos: [TKT-1234] Mi nueva funcionalidad",
		TicketInput:      "Número del ticket (deja vacío para omitir):",
		TicketConfirmed:  "Usando ticket: %s",
		NoTicketProvided: "No se proporcionó ticket",

		SelectTemplate:           "Selecciona una plantilla PR:",
		UsingTemplate:            "Usando plantilla %s",
		TemplateNotFound:         "La plantilla \"%s\" no existe",
		CreateCustomTemplate:     "➕ Crear nueva plantilla personalizada",
		UserTemplateSuffix:       "Plantilla personalizada",
		TemplateNamePrompt:       "Ingresa nombre de plantilla:",
		TemplateStructurePrompt:  "Estructura de plantilla:",
		TemplateStructureHint:    "Define cómo debe generar la IA la descripción. Termina con Ctrl+D o una línea con un punto (.)",
		StructureExamples:        []string{
			"**Ticket:** {{TICKET_OR_SKIP}}  (la línea se elimina si no hay ticket)",
			"**Qué se hizo:** [Descripción de los cambios]",
		},
		TemplateStructureDefault: "Genera una descripción de PR con las siguientes secciones:\n\n**Ticket:** {{TICKET_OR_SKIP}}\n**Qué se hizo:** [Descripción de los cambios]\n**Detalles:** [Detalles adicionales]",
		CustomTemplateCreated:    "Creada y usando plantilla personalizada: %s",
		TemplateDeleted:          "Plantilla eliminada: %s",
		NoUserTemplates:          "No hay plantillas de usuario.",

		GeneratingDescription: "🤖 Generando descripción de PR con IA...",
		GeneratedDescription:  "Descripción de PR generada:",

		WhatWouldYouLikeToDo: "¿Qué te gustaría hacer?",
		CopyToClipboard:      "📋 Copiar al portapapeles",
		SaveToFile:           "💾 Guardar en archivo",
		RequestAdjustments:   "✏️  Solicitar ajustes de IA",
		Finish:               "✅ Terminar",
		CopiedToClipboard:    "¡Copiado al portapapeles!",
		EnterFilename:        "Ingresa nombre de archivo:",
		SavedToFile:          "Guardado en %s",
		FilenameDefault:      "descripcion-pr.txt",
		AdjustmentPrompt:     "¿Qué cambios te gustaría? (ej.: \"hazlo más corto\", \"añade más detalles sobre migraciones\")",
		AdjustingDescription: "🤖 Ajustando descripción de PR...",
		DescriptionUpdated:   "¡Descripción de PR actualizada!",
		Done:                 "✨ ¡Listo! Gracias por usar el Generador de Descripción de PR",

		SelectLanguage:  "Selecciona el idioma:",
		LanguageChanged: "Idioma cambiado a %s",

		YesTokens:   []string{"s", "si", "sí", "y", "yes"},
		ConfirmHint: "[s/N]",
	},
	English: {
		AppTitle:    "🚀 PR Description Generator",
		Description: "Automatically generates Pull Request descriptions based on Git diffs using AI",
		PoweredBy:   "Powered by Google Gemini for fast, accurate descriptions",
		Help: `Usage:
  prgen <target-branch> [flags]

Examples:
  prgen develop
  prgen main --template backend --ticket "BE-123"
  prgen main -o clipboard -t frontend

⚙️  API Key Management:
  prgen --set-api-key       # Set or update API key
  prgen --clear-api-key     # Remove saved API key
  prgen --change-language   # Change language

🎨 Templates:
  frontend   Includes: Ticket, What was done, Data needed to test, How to test, What's missing, Screenshots
  backend    Includes: Ticket, What was done, Migrations
  custom     General purpose
  User templates: create your own from the interactive menu

💡 Tips:
  • Ensure you're in a Git repository
  • Supports Spanish and English languages
  • Use descriptive ticket numbers (e.g., FE-123, BE-456)
  • You can request AI adjustments after initial generation

🔑 Setup:
  Get a Gemini API key: https://aistudio.google.com/app/apikey`,

		APIKeyRequired:     "❌ Gemini API key required",
		APIKeyFromURL:      "📍 Get your API key from: https://aistudio.google.com/app/apikey",
		APIKeySavedLocally: "The API key will be saved locally for future use.",
		APIKeyPrompt:       "Enter your Gemini API key:",
		APIKeySaved:        "API key configured and saved successfully",
		APIKeyLoaded:       "Gemini API key loaded",
		InvalidAPIKey:      "Invalid API key, please re-enter it",
		SetAPIKeyTitle:     "🔑 Set Gemini API Key",
		ClearAPIKeyTitle:   "🗑️  Clear Gemini API Key",
		ConfirmClearAPIKey: "Are you sure you want to clear your saved API key?",
		APIKeyCleared:      "API key cleared successfully",
		NoAPIKeyToClear:    "No API key found to clear.",
		OperationCancelled: "Operation cancelled.",

		CurrentBranch:     "📍 Current branch:",
		TargetBranch:      "🎯 Target branch:",
		GeneratingDiff:    "Generating diff...",
		DiffGenerated:     "Diff generated successfully",
		DiffStatistics:    "Diff statistics:",
		NoChangesDetected: "No changes detected between branches",

		TicketPrompt:     "🎫 Enter Jira/VSTS ticket number and title (optional):",
		TicketExamples:   "Examples: [TKT-1234] My new feature",
		TicketInput:      "Ticket number (leave empty to skip):",
		TicketConfirmed:  "Using ticket: %s",
		NoTicketProvided: "No ticket provided",

		SelectTemplate:           "Select a PR template:",
		UsingTemplate:            "Using %s template",
		TemplateNotFound:         "Template \"%s\" not found",
		CreateCustomTemplate:     "➕ Create new custom template",
		UserTemplateSuffix:       "Custom template",
		TemplateNamePrompt:       "Enter template name:",
		TemplateStructurePrompt:  "Template structure:",
		TemplateStructureHint:    "Define how the AI should generate the PR description. Finish with Ctrl+D or a line containing a single dot (.)",
		StructureExamples:        []string{
			"**Ticket:** {{TICKET_OR_SKIP}}  (the line is removed when there is no ticket)",
			"**What was done:** [Description of changes]",
		},
		TemplateStructureDefault: "Generate a PR description with the following sections:\n\n**Ticket:** {{TICKET_OR_SKIP}}\n**What was done:** [Description of changes]\n**Details:** [Additional details]",
		CustomTemplateCreated:    "Created and using custom template: %s",
		TemplateDeleted:          "Template deleted: %s",
		NoUserTemplates:          "No user templates.",

		GeneratingDescription: "🤖 Generating PR description with AI...",
		GeneratedDescription:  "Generated PR Description:",

		WhatWouldYouLikeToDo: "What would you like to do?",
		CopyToClipboard:      "📋 Copy to clipboard",
		SaveToFile:           "💾 Save to file",
		RequestAdjustments:   "✏️  Request AI adjustments",
		Finish:               "✅ Finish",
		CopiedToClipboard:    "Copied to clipboard!",
		EnterFilename:        "Enter filename:",
		SavedToFile:          "Saved to %s",
		FilenameDefault:      "pr-description.txt",
		AdjustmentPrompt:     "What changes would you like? (e.g., \"make it shorter\", \"add more details about migrations\")",
		AdjustingDescription: "🤖 Adjusting PR description...",
		DescriptionUpdated:   "PR description updated!",
		Done:                 "✨ Done! Thank you for using PR Description Generator",

		SelectLanguage:  "Select your language:",
		LanguageChanged: "Language changed to %s",

		YesTokens:   []string{"y", "yes"},
		ConfirmHint: "[y/N]",
	},
}

// MessagesFor returns the message catalog for the locale, falling back to
// the default locale for unknown values
func MessagesFor(l Locale) Messages {
	if m, ok := catalogs[l]; ok {
		return m
	}
	return catalogs[DefaultLocale()]
}
