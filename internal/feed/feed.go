package feed

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"lrtdigest/internal/digest"
	"lrtdigest/internal/logger"
)

// Topic is one named news category backed by a single RSS feed.
type Topic struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// TopicsConfig is the YAML config structure
// topics:
//   - name: Lietuvoje
//     url: https://...
type TopicsConfig struct {
	Topics []Topic `yaml:"topics"`
}

// LoadTopics reads the ordered topic list from a YAML file. The file
// order is the section order of the report.
func LoadTopics(path string) ([]Topic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg TopicsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Topics, nil
}

// Collector pulls one topic's feed and normalizes its entries into
// pipeline candidates.
type Collector struct {
	parser *gofeed.Parser
	loc    *time.Location
}

func NewCollector(loc *time.Location, timeout time.Duration) *Collector {
	p := gofeed.NewParser()
	p.UserAgent = "Mozilla/5.0 (lrt-digest)"
	p.Client = &http.Client{Timeout: timeout}
	return &Collector{parser: p, loc: loc}
}

// Collect fetches and parses a topic's feed. A failing feed logs a
// warning and yields zero candidates so one broken topic can't abort
// the run.
func (c *Collector) Collect(ctx context.Context, t Topic) []digest.Candidate {
	feed, err := c.parser.ParseURLWithContext(t.URL, ctx)
	if err != nil {
		logger.Warn("feed fetch failed", "topic", t.Name, "url", t.URL, "error", err)
		return nil
	}
	logger.Info("feed loaded", "topic", t.Name, "entries", len(feed.Items))
	return c.normalize(t.Name, feed.Items)
}

// normalize maps feed entries to candidates in source order, tolerating
// missing fields per entry: no title falls back to the link, no usable
// timestamp leaves Published nil (the pipeline treats that as in-window).
// Entries without a link are kept as empty-URL candidates; the pipeline
// drops those.
func (c *Collector) normalize(topic string, items []*gofeed.Item) []digest.Candidate {
	out := make([]digest.Candidate, 0, len(items))
	for _, it := range items {
		title := it.Title
		if title == "" {
			title = it.Link
		}

		var published *time.Time
		ts := it.PublishedParsed
		if ts == nil {
			ts = it.UpdatedParsed
		}
		if ts != nil {
			local := ts.In(c.loc)
			published = &local
		}

		out = append(out, digest.Candidate{
			Topic:     topic,
			Title:     title,
			URL:       it.Link,
			Published: published,
		})
	}
	return out
}
