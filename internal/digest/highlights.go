package digest

import (
	"context"
	"fmt"
	"strings"

	"lrtdigest/internal/logger"
)

const (
	// Highlight prompt is built from at most this many items to keep it
	// compact.
	maxHighlightCandidates = 30

	maxHighlights = 3
)

// Generator is the raw text-generation call used for highlight selection.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// PickHighlights asks the model to choose the up-to-3 most important items
// from the flattened digest. Highlights are decorative: an empty input
// makes no call at all, and any generation failure degrades to an empty
// list instead of blocking delivery.
func PickHighlights(ctx context.Context, gen Generator, items []Item, mode Mode) []string {
	if len(items) == 0 {
		return nil
	}

	var lines []string
	for i, it := range items {
		if i >= maxHighlightCandidates {
			break
		}
		lines = append(lines, fmt.Sprintf("%d) [%s] %s (%s)", i+1, it.Topic, it.Title, it.PublishedHHMM))
	}

	prompt := highlightPrompt(mode, lines)

	out, err := gen.Generate(ctx, prompt)
	if err != nil {
		logger.Warn("highlight generation failed", "error", err)
		return nil
	}

	var bullets []string
	for _, ln := range strings.Split(out, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		bullets = append(bullets, ln)
		if len(bullets) >= maxHighlights {
			break
		}
	}
	return bullets
}

func highlightPrompt(mode Mode, lines []string) string {
	hint := "Ryto santrauka"
	switch mode {
	case ModeMidday:
		hint = "Vidurdienio atnaujinimas"
	case ModeEvening:
		hint = "Vakaro apžvalga"
	}

	return strings.TrimSpace(fmt.Sprintf(`Tu esi naujienų redaktorius. %s.
Iš pateikto sąrašo parink 3 svarbiausias naujienas.

Taisyklės:
- Atsakyk tik 3 eilutėmis.
- Kiekviena eilutė: "• <antraštė> — <kodėl svarbu (iki 12 žodžių)>"
- Lietuviškai.

Sąrašas:
%s`, hint, strings.Join(lines, "\n")))
}
