package persona

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/PabloGalante/farum-support/internal/domain"
)

const baseSystemPrompt = `
You are part of "Farum", a companion focused on mental well-being.

Your role:
- You listen with empathy and without judgment.
- You help the user clarify what they feel, what they need, and what they can do next.
- You are NOT a therapist, doctor, or emergency service and you do NOT give medical or psychiatric diagnoses.

General style guidelines:
- Answer in the SAME LANGUAGE as the user.
- Be concise: 3-8 short paragraphs or bullet points max.
- Use simple, everyday language, not technical jargon.
- Reflect back what you understood before giving suggestions.
- Ask 1 or 2 good follow-up questions, not more.
- Invite the user to take small, realistic steps rather than big changes.

Boundaries and safety:
- If the user mentions self-harm, suicide, or that they might hurt someone, encourage them to seek immediate help from local emergency services or a trusted person.
- Make it clear you cannot replace professional mental health care, especially in crisis situations.
- Never give instructions on how to self-harm or harm others.
`

// SystemPrompt is the system instruction sent with every prompt of p.
func SystemPrompt(p domain.PersonaConfig) string {
	var b strings.Builder
	b.WriteString(baseSystemPrompt)
	fmt.Fprintf(&b, "\nYou are acting as: %s\n", p.Role)
	fmt.Fprintf(&b, "Your goal: %s\n", p.Goal)
	if p.Backstory != "" {
		fmt.Fprintf(&b, "Background: %s\n", p.Backstory)
	}
	return b.String()
}

// Field names a template accepts, without braces.
const (
	FieldMessage              = "message"
	FieldUserContext          = "user_context"
	FieldDominantEmotion      = "dominant_emotion"
	FieldDepressionIndicators = "depression_indicators"
	FieldAnxietyIndicators    = "anxiety_indicators"
	FieldStressIndicators     = "stress_indicators"
	FieldEnergyLevel          = "energy_level"
	FieldMotivationLevel      = "motivation_level"
	FieldDistortions          = "distortions"
	FieldTherapeuticGoals     = "therapeutic_goals"
	FieldCommunicationStyle   = "communication_style"
	FieldTrend                = "trend"
)

// Fields maps placeholder names to values.
type Fields map[string]string

// Score formats a 0..1 score for a template.
func Score(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// List formats a list for a template, "none" when empty.
func List(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

// Clone returns a copy of f that can be changed independently.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Render substitutes each {name} in tmpl with fields[name]. Placeholders
// without a value are left as they are.
func Render(tmpl string, fields Fields) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", fields[k])
	}
	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(tmpl))
}
