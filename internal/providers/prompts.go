package providers

import (
	"fmt"

	"linguahub-backend/internal/models"
)

// RenderingGuidelines are the rich-content rules shared by the chat
// default instruction and the search synthesis instruction: Markdown
// everywhere, fenced code with language tags, mermaid with quoted node
// labels, KaTeX for formulas, Markdown tables for tabular data.
const RenderingGuidelines = `Format every response in Markdown.
- Wrap code in fenced blocks with a language tag, e.g. ` + "```python" + `.
- Use mermaid syntax for flowcharts and sequence diagrams; always wrap node labels in double quotes, e.g. A["Start"].
- Use KaTeX notation for mathematical formulas ($...$ inline, $$...$$ display).
- Present tabular data as Markdown tables.`

// DefaultChatInstruction is used when a conversation has no custom
// system instruction.
const DefaultChatInstruction = "You are a helpful assistant.\n" + RenderingGuidelines

const markdownPreservation = "Preserve the original Markdown formatting of the input exactly: keep headings, lists, links, emphasis and code blocks intact, translating only the natural-language content."

// TranslateInstruction builds the system instruction for LLM-backed
// translation. An industry other than the default appends
// domain-specific phrasing.
func TranslateInstruction(sourceLang, targetLang, industry string) string {
	instruction := fmt.Sprintf(
		"You are a professional translator. Translate the user's content from %s to %s. Output only the translation, with no explanations or commentary.",
		sourceLang, targetLang,
	)
	if industry != "" && industry != models.DefaultIndustry {
		instruction += fmt.Sprintf(" Use terminology and phrasing appropriate to the %s industry.", industry)
	}
	return instruction + " " + markdownPreservation
}
