package prompt

import (
	"fmt"
	"strings"

	"github.com/huimingz/prgen/internal/git"
	"github.com/huimingz/prgen/internal/templates"
	"github.com/huimingz/prgen/pkg/lang"
)

// GenerationRequest is everything needed to draft a description
type GenerationRequest struct {
	Diff              git.DiffResult
	Template          templates.Template
	Ticket            string
	ExtraInstructions string
}

// Prompt is an instruction block plus a content block
type Prompt struct {
	Instruction string
	Content     string
}

// Text joins both blocks with a blank line
func (p Prompt) Text() string {
	return p.Instruction + "\n\n" + p.Content
}

type directives struct {
	header       string
	instructions string
	extraHeader  string
	noFiles      string
	closing      string
	languageName string
}

var directivesByLocale = map[lang.Locale]directives{
	lang.Spanish: {
		header: "Genera un PR siguiendo EXACTAMENTE esta estructura:",
		instructions: `INSTRUCCIONES:
1. Copia los headers en negrita exactamente como están
2. Completa cada sección según el git diff proporcionado
3. Usa viñetas (- ) para listar los puntos en cada sección
4. Si no hay información para alguna sección, omítela completamente
5. Sé específico y detallado basándote en los archivos modificados`,
		extraHeader:  "INSTRUCCIONES ADICIONALES:",
		noFiles:      "(no se modificaron archivos)",
		closing:      "Genera la descripción del PR usando EXACTAMENTE la estructura mostrada arriba:",
		languageName: "Spanish",
	},
	lang.English: {
		header: "Generate a PR following EXACTLY this structure:",
		instructions: `INSTRUCTIONS:
1. Copy the bold headers exactly as they are
2. Fill in each section based on the provided git diff
3. Use bullet points (- ) to list the items in each section
4. If there is no information for a section, omit it completely
5. Be specific and detailed based on the modified files`,
		extraHeader:  "ADDITIONAL INSTRUCTIONS:",
		noFiles:      "(no files changed)",
		closing:      "Generate the PR description using EXACTLY the structure shown above:",
		languageName: "English",
	},
}

const adjustmentDirective = `You are a technical writer helping to refine a Pull Request description.
The user will provide the current PR description and request modifications.
Apply the requested changes and return the updated PR description.

IMPORTANT: Generate ONLY the PR description content. Do NOT include any markdown code blocks, backticks, or language identifiers. Output clean markdown that can be used directly.`

// Assembler builds prompts for one locale
type Assembler struct {
	Locale lang.Locale
}

// NewAssembler creates an assembler for the locale
func NewAssembler(locale lang.Locale) *Assembler {
	return &Assembler{Locale: locale.OrDefault()}
}

func (a *Assembler) directives() directives {
	return directivesByLocale[a.Locale.OrDefault()]
}

// Generation builds the first-draft prompt
func (a *Assembler) Generation(req GenerationRequest) Prompt {
	d := a.directives()
	structure := RenderTemplate(req.Template.Structure, req.Ticket)

	var instr strings.Builder
	instr.WriteString(d.header)
	instr.WriteString("\n\n")
	instr.WriteString(structure)
	instr.WriteString("\n\n")
	instr.WriteString(d.instructions)
	if extra := strings.TrimSpace(req.ExtraInstructions); extra != "" {
		instr.WriteString("\n\n")
		instr.WriteString(d.extraHeader)
		instr.WriteString("\n")
		instr.WriteString(req.ExtraInstructions)
	}

	stat := req.Diff.DiffStat
	if strings.TrimSpace(stat) == "" {
		stat = d.noFiles
	}

	var content strings.Builder
	content.WriteString("GIT DIFF:\n\n")
	fmt.Fprintf(&content, "**Branch:** %s → %s\n", req.Diff.CurrentBranch, req.Diff.TargetBranch)
	if ticket := strings.TrimSpace(req.Ticket); ticket != "" {
		fmt.Fprintf(&content, "**Ticket:** %s\n", ticket)
	}
	fmt.Fprintf(&content, "**Files changed:** %s\n", stat)
	fmt.Fprintf(&content, "**Changes:** %s\n\n", truncateRunes(req.Diff.DiffContent, MaxDiffChars))
	content.WriteString(d.closing)

	return Prompt{Instruction: instr.String(), Content: content.String()}
}

// Adjustment builds the refinement prompt for an existing draft. The request may be empty.
func (a *Assembler) Adjustment(draft, request string) Prompt {
	instr := adjustmentDirective + "\nWrite the updated description in " + a.directives().languageName + "."

	content := fmt.Sprintf(`Current PR Description:
%s

Adjustment Request: %s

Please modify the PR description according to the request and return the updated version:`, draft, request)

	return Prompt{Instruction: instr, Content: content}
}
