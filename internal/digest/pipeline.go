package digest

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"lrtdigest/internal/logger"
	"lrtdigest/internal/metrics"
)

const (
	// Extracted article text shorter than this is considered unreliable
	// and never sent to the model.
	minExtractedRunes = 200

	// Article text is cut to this many runes before summarization.
	maxSummaryInputRunes = 12000

	// SummaryUnreliable is the fixed summary used when extraction yields
	// too little text to trust.
	SummaryUnreliable = "Nepavyko patikimai ištraukti teksto."
)

// ArticleFetcher downloads raw article markup for a URL.
type ArticleFetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
}

// TextExtractor pulls the readable body text out of article markup.
type TextExtractor interface {
	ExtractText(html, pageURL string) (string, error)
}

// Summarizer turns an article into a short synopsis.
type Summarizer interface {
	Summarize(ctx context.Context, title, text string) (string, error)
}

// Pipeline turns raw candidates into the bounded, deduplicated, per-topic
// digest. One Pipeline serves exactly one run: the seen-URL set lives for
// a single Build call and is discarded with it.
type Pipeline struct {
	fetcher        ArticleFetcher
	extractor      TextExtractor
	summarizer     Summarizer
	breakingWindow time.Duration
	maxPerTopic    int
}

func NewPipeline(f ArticleFetcher, e TextExtractor, s Summarizer, breakingWindow time.Duration, maxPerTopic int) *Pipeline {
	return &Pipeline{
		fetcher:        f,
		extractor:      e,
		summarizer:     s,
		breakingWindow: breakingWindow,
		maxPerTopic:    maxPerTopic,
	}
}

// Build processes topics strictly in the given order and, within a topic,
// in feed order. Enforced per item: global cross-topic URL dedup
// (first seen wins), inclusive [windowStart, windowEnd] membership for
// dated entries, and the per-topic cap. A topic's remaining entries are
// not evaluated once its cap is reached.
func (p *Pipeline) Build(ctx context.Context, topics []TopicCandidates, windowStart, windowEnd, now time.Time) *Result {
	res := &Result{Sections: make([]Section, 0, len(topics))}
	seen := make(map[string]struct{})

	for _, tc := range topics {
		section := Section{Topic: tc.Topic}

		for _, c := range tc.Candidates {
			metrics.Global.IncrementEntriesScanned()

			if c.URL == "" {
				continue
			}
			if _, dup := seen[c.URL]; dup {
				metrics.Global.IncrementDuplicatesFiltered()
				continue
			}
			if c.Published != nil {
				if c.Published.Before(windowStart) || c.Published.After(windowEnd) {
					continue
				}
			}

			item := Item{
				Topic:     tc.Topic,
				Title:     c.Title,
				URL:       c.URL,
				Summary:   p.summarize(ctx, c.Title, c.URL),
				Published: c.Published,
			}
			if c.Published != nil {
				item.PublishedHHMM = c.Published.Format("15:04")
				item.IsBreaking = now.Sub(*c.Published) <= p.breakingWindow
			}

			section.Items = append(section.Items, item)
			res.Flat = append(res.Flat, item)
			seen[c.URL] = struct{}{}
			metrics.Global.IncrementItemsEmitted()

			if len(section.Items) >= p.maxPerTopic {
				break
			}
		}

		logger.Info("topic processed", "topic", tc.Topic, "items", len(section.Items))
		res.Sections = append(res.Sections, section)
	}

	return res
}

// summarize fetches and extracts the article, then asks the model for a
// synopsis. Every failure is absorbed into the summary text so a bad
// article can never take down the topic or the run.
func (p *Pipeline) summarize(ctx context.Context, title, url string) string {
	html, err := p.fetcher.FetchHTML(ctx, url)
	if err != nil {
		logger.Warn("article fetch failed", "url", url, "error", err)
		metrics.Global.IncrementSummaryFailures()
		return "Klaida: " + err.Error()
	}

	text, err := p.extractor.ExtractText(html, url)
	if err != nil {
		logger.Warn("article extraction failed", "url", url, "error", err)
		metrics.Global.IncrementSummaryFailures()
		return "Klaida: " + err.Error()
	}

	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minExtractedRunes {
		return SummaryUnreliable
	}
	if utf8.RuneCountInString(text) > maxSummaryInputRunes {
		text = string([]rune(text)[:maxSummaryInputRunes])
	}

	summary, err := p.summarizer.Summarize(ctx, title, text)
	if err != nil {
		logger.Warn("summarization failed", "url", url, "error", err)
		metrics.Global.IncrementSummaryFailures()
		return "Klaida: " + err.Error()
	}

	metrics.Global.IncrementSummariesGenerated()
	return strings.TrimSpace(summary)
}
