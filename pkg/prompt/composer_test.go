package prompt

import (
	"strings"
	"testing"

	"ai-chatapp-be/internal/entity"
	"ai-chatapp-be/pkg/dataset"
)

var testAgent = &entity.Agent{
	Name:          "Alex - The Friendly Helper",
	Personality:   "Warm and encouraging.",
	FeedbackStyle: "Constructive with gentle suggestions.",
	SystemPrompt:  "You are Alex, a friendly assistant.",
}

func TestPersonaBlock(t *testing.T) {
	c := NewComposer(0, "default prompt")
	block := c.PersonaBlock(testAgent)

	for _, want := range []string{
		"You are Alex - The Friendly Helper, an AI assistant",
		"Personality: Warm and encouraging.",
		"Feedback Style: Constructive with gentle suggestions.",
		"You are Alex, a friendly assistant.",
		"Always respond in character as Alex - The Friendly Helper",
	} {
		if !strings.Contains(block, want) {
			t.Errorf("persona block missing %q", want)
		}
	}
}

func TestDatasetBlock(t *testing.T) {
	c := NewComposer(0, "")

	t.Run("empty rows", func(t *testing.T) {
		if got := c.DatasetBlock(nil); got != "" {
			t.Errorf("DatasetBlock(nil) = %q, want empty", got)
		}
	})

	t.Run("full row", func(t *testing.T) {
		block := c.DatasetBlock([]dataset.Row{{
			Timestamp: "2023-01-01",
			Track:     "Song X",
			Artist:    "Artist Y",
			Album:     "Album Z",
			MsPlayed:  "215000",
		}})

		lines := strings.Split(block, "\n")
		if len(lines) != 2 {
			t.Fatalf("line count = %d, want 2", len(lines))
		}
		if !strings.HasPrefix(lines[1], " - ") {
			t.Errorf("row line %q lacks list prefix", lines[1])
		}
		want := " - 2023-01-01 | 'Song X' by Artist Y | album: Album Z | played_ms: 215000"
		if lines[1] != want {
			t.Errorf("row line = %q, want %q", lines[1], want)
		}
	})

	t.Run("missing fields fall back", func(t *testing.T) {
		block := c.DatasetBlock([]dataset.Row{{}})
		if !strings.Contains(block, "'Unknown Track' by Unknown Artist") {
			t.Errorf("block = %q, want unknown placeholders", block)
		}
		if strings.Contains(block, "album:") || strings.Contains(block, "played_ms:") {
			t.Errorf("block %q should omit empty optional fields", block)
		}
	})
}

func TestDatasetBlockTruncation(t *testing.T) {
	const limit = 120
	c := NewComposer(limit, "")

	rows := make([]dataset.Row, 20)
	for i := range rows {
		rows[i] = dataset.Row{Track: strings.Repeat("x", 30), Artist: "Somebody"}
	}

	block := c.DatasetBlock(rows)
	if len(block) > limit {
		t.Errorf("len = %d, want at most %d", len(block), limit)
	}
	if !strings.HasSuffix(block, "...") {
		t.Errorf("truncated block %q lacks marker", block)
	}
}

func TestCompose(t *testing.T) {
	c := NewComposer(0, "default prompt")
	block := c.DatasetBlock([]dataset.Row{{Track: "Song X", Artist: "Artist Y"}})

	t.Run("agent with dataset", func(t *testing.T) {
		got := c.Compose(testAgent, block)

		personaIdx := strings.Index(got, "You are Alex - The Friendly Helper")
		datasetIdx := strings.Index(got, "Listening history context")
		if personaIdx < 0 || datasetIdx < 0 {
			t.Fatalf("missing blocks in %q", got)
		}
		if personaIdx > datasetIdx {
			t.Error("persona must precede dataset context")
		}
		if !strings.Contains(got, "Do not fabricate entries.") {
			t.Error("missing guidance sentence")
		}
	})

	t.Run("no agent uses default", func(t *testing.T) {
		got := c.Compose(nil, "")
		if got != "default prompt" {
			t.Errorf("got %q, want the default prompt alone", got)
		}
	})

	t.Run("no dataset omits guidance", func(t *testing.T) {
		got := c.Compose(testAgent, "")
		if strings.Contains(got, "Do not fabricate entries.") {
			t.Error("guidance should only appear with dataset context")
		}
	})
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  string
	}{
		{"empty", "", ""},
		{"single line", "header", "header"},
		{"two lines", "header\n - row", "header |  - row"},
		{"truncates to two", "header\n - row1\n - row2", "header |  - row1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.block); got != tt.want {
				t.Errorf("Preview(%q) = %q, want %q", tt.block, got, tt.want)
			}
		})
	}
}
