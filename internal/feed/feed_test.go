package feed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestLoadTopicsPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "topics.yaml")
	content := `topics:
  - name: Lietuvoje
    url: https://example.org/lietuvoje?rss
  - name: Pasaulyje
    url: https://example.org/pasaulyje?rss
  - name: Sportas
    url: https://example.org/sportas?rss
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	topics, err := LoadTopics(path)
	if err != nil {
		t.Fatalf("LoadTopics: %v", err)
	}

	want := []string{"Lietuvoje", "Pasaulyje", "Sportas"}
	if len(topics) != len(want) {
		t.Fatalf("got %d topics, want %d", len(topics), len(want))
	}
	for i, name := range want {
		if topics[i].Name != name {
			t.Errorf("topics[%d].Name = %q, want %q", i, topics[i].Name, name)
		}
		if topics[i].URL == "" {
			t.Errorf("topics[%d] has empty URL", i)
		}
	}
}

func TestLoadTopicsMissingFile(t *testing.T) {
	if _, err := LoadTopics(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing topics file")
	}
}

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Test</title>
  <item>
    <title>Pirma naujiena</title>
    <link>https://example.org/a</link>
    <pubDate>Fri, 14 Mar 2025 05:04:00 GMT</pubDate>
  </item>
  <item>
    <link>https://example.org/b</link>
  </item>
  <item>
    <title>Be nuorodos</title>
  </item>
</channel>
</rss>`

func TestNormalize(t *testing.T) {
	parsed, err := gofeed.NewParser().ParseString(sampleRSS)
	if err != nil {
		t.Fatalf("parsing sample feed: %v", err)
	}

	loc := time.FixedZone("EET", 2*3600)
	c := NewCollector(loc, 5*time.Second)

	cands := c.normalize("Lietuvoje", parsed.Items)
	if len(cands) != 3 {
		t.Fatalf("got %d candidates, want 3", len(cands))
	}

	first := cands[0]
	if first.Topic != "Lietuvoje" || first.Title != "Pirma naujiena" || first.URL != "https://example.org/a" {
		t.Errorf("unexpected first candidate: %+v", first)
	}
	if first.Published == nil {
		t.Fatal("first candidate should carry a timestamp")
	}
	if got, want := first.Published.Format("15:04"), "07:04"; got != want {
		t.Errorf("published local time = %q, want %q (UTC converted to EET)", got, want)
	}

	// Missing title falls back to the link.
	if cands[1].Title != "https://example.org/b" {
		t.Errorf("title fallback = %q, want the link", cands[1].Title)
	}
	if cands[1].Published != nil {
		t.Errorf("entry without dates must have nil Published")
	}

	// Missing link stays as an empty-URL candidate; the pipeline drops it.
	if cands[2].URL != "" {
		t.Errorf("expected empty URL, got %q", cands[2].URL)
	}
}
