// Package prompt assembles the system prompt for a chat turn from an
// optional agent persona and an optional block of dataset context. Pure
// transformation, bounded output, no I/O.
package prompt

import (
	"fmt"
	"strings"

	"ai-chatapp-be/internal/entity"
	"ai-chatapp-be/pkg/dataset"
)

const (
	DefaultCharLimit = 1500

	datasetHeader = "Listening history context (top matches):"

	truncationMarker = "..."

	// Transition between the persona/default block and the dataset block.
	datasetGuidance = "When answering, prioritize and reference the following dataset context if it is relevant to the user's question. " +
		"If it is not relevant, answer normally. Do not fabricate entries."
)

type Composer struct {
	charLimit     int
	defaultPrompt string
}

// NewComposer builds a composer with the given dataset character budget and
// the fallback system prompt used when no agent is selected.
func NewComposer(charLimit int, defaultPrompt string) *Composer {
	if charLimit <= 0 {
		charLimit = DefaultCharLimit
	}
	return &Composer{
		charLimit:     charLimit,
		defaultPrompt: defaultPrompt,
	}
}

// PersonaBlock renders the agent persona paragraph: identity, personality,
// feedback style, the agent's own base instructions, and the in-character
// closing line.
func (c *Composer) PersonaBlock(agent *entity.Agent) string {
	return fmt.Sprintf(`You are %s, an AI assistant with the following characteristics:

Personality: %s
Feedback Style: %s

%s

Always respond in character as %s with the specified personality and feedback style.`,
		agent.Name, agent.Personality, agent.FeedbackStyle, agent.SystemPrompt, agent.Name)
}

// DatasetBlock renders the ranked rows into the bounded context block.
// Empty fields are omitted per line; the whole block is cut at the character
// budget with a truncation marker appended. Returns "" for no rows.
func (c *Composer) DatasetBlock(rows []dataset.Row) string {
	if len(rows) == 0 {
		return ""
	}

	lines := []string{datasetHeader}
	for _, r := range rows {
		var parts []string
		if r.Timestamp != "" {
			parts = append(parts, r.Timestamp)
		}
		title := r.Track
		if title == "" {
			title = "Unknown Track"
		}
		artist := r.Artist
		if artist == "" {
			artist = "Unknown Artist"
		}
		parts = append(parts, fmt.Sprintf("'%s' by %s", title, artist))
		if r.Album != "" {
			parts = append(parts, "album: "+r.Album)
		}
		if r.MsPlayed != "" {
			parts = append(parts, "played_ms: "+r.MsPlayed)
		}
		lines = append(lines, " - "+strings.Join(parts, " | "))
	}

	block := strings.Join(lines, "\n")
	if len(block) > c.charLimit {
		block = block[:c.charLimit-len(truncationMarker)] + truncationMarker
	}
	return block
}

// Compose merges the blocks into the final system prompt. Order is fixed:
// persona (or the default instruction) first, then the guidance sentence and
// dataset block when context exists.
func (c *Composer) Compose(agent *entity.Agent, datasetBlock string) string {
	var systemPrompt string
	if agent != nil {
		systemPrompt = c.PersonaBlock(agent)
	} else {
		systemPrompt = c.defaultPrompt
	}

	if datasetBlock != "" {
		systemPrompt = systemPrompt + "\n\n" + datasetGuidance + "\n\n" + datasetBlock
	}
	return systemPrompt
}

// Preview returns a compact one-line digest of the dataset block (its first
// two lines), stored alongside the persisted message for auditing.
func Preview(datasetBlock string) string {
	if datasetBlock == "" {
		return ""
	}
	lines := strings.Split(datasetBlock, "\n")
	if len(lines) > 2 {
		lines = lines[:2]
	}
	return strings.Join(lines, " | ")
}
