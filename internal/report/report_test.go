package report

import (
	"strings"
	"testing"
	"time"

	"lrtdigest/internal/digest"
)

var testTitles = digest.Titles{
	Subject:  "[Ryto santrauka] LRT naujienos — 2025-03-14",
	Header:   "LRT ryto naujienų santrauka — 2025-03-14",
	Subtitle: "Svarbiausios šios dienos naujienos (nuo 00:00).",
}

func testSections() []digest.Section {
	return []digest.Section{
		{
			Topic: "Lietuvoje",
			Items: []digest.Item{
				{
					Topic:         "Lietuvoje",
					Title:         "Naujiena <b>su žymomis</b>",
					URL:           "https://www.lrt.lt/naujienos/lietuvoje/x",
					Summary:       "- Pirmas punktas\n- Antras punktas",
					PublishedHHMM: "07:10",
					IsBreaking:    true,
				},
			},
		},
		{Topic: "Sportas"},
	}
}

func buildAt() time.Time {
	return time.Date(2025, 3, 14, 7, 30, 0, 0, time.FixedZone("EET", 2*3600))
}

func TestBuildHTMLEscapesTitles(t *testing.T) {
	doc := BuildHTML("2025-03-14", testTitles, testSections(), nil, "", buildAt())

	if strings.Contains(doc, "<b>su žymomis</b>") {
		t.Error("item title was not escaped")
	}
	if !strings.Contains(doc, "&lt;b&gt;su žymomis&lt;/b&gt;") {
		t.Error("escaped title not found in document")
	}
}

func TestBuildHTMLBreakingBadge(t *testing.T) {
	doc := BuildHTML("2025-03-14", testTitles, testSections(), nil, "", buildAt())

	if !strings.Contains(doc, `<span class="badge breaking">NAUJA</span>`) {
		t.Error("breaking item should carry the NAUJA badge")
	}
}

func TestBuildHTMLSummaryBullets(t *testing.T) {
	doc := BuildHTML("2025-03-14", testTitles, testSections(), nil, "", buildAt())

	if !strings.Contains(doc, "<li>Pirmas punktas</li>") || !strings.Contains(doc, "<li>Antras punktas</li>") {
		t.Error("bulleted summary should render as a list")
	}
}

func TestBuildHTMLEmptyTopicIsHidden(t *testing.T) {
	doc := BuildHTML("2025-03-14", testTitles, testSections(), nil, "", buildAt())

	if strings.Contains(doc, ">Sportas<") {
		t.Error("topic with no items should not render a section")
	}
}

func TestBuildHTMLEmptyState(t *testing.T) {
	sections := []digest.Section{{Topic: "Lietuvoje"}, {Topic: "Sportas"}}
	doc := BuildHTML("2025-03-14", testTitles, sections, nil, "", buildAt())

	if !strings.Contains(doc, "naujienų šiame lange nerasta") {
		t.Error("all-empty digest should show the empty state")
	}
}

func TestBuildHTMLHighlights(t *testing.T) {
	highlights := []string{"• Pirma — svarbu", "• Antra — svarbu"}
	doc := BuildHTML("2025-03-14", testTitles, testSections(), highlights, "", buildAt())

	if !strings.Contains(doc, "Top 3 šiandien") {
		t.Error("highlight block missing")
	}
	if !strings.Contains(doc, "<li>Pirma — svarbu</li>") {
		t.Error("highlight bullet prefix should be stripped from list entries")
	}
}

func TestBuildHTMLNoHighlightsNoBlock(t *testing.T) {
	doc := BuildHTML("2025-03-14", testTitles, testSections(), nil, "", buildAt())

	if strings.Contains(doc, "Top 3 šiandien") {
		t.Error("no highlight block expected without highlights")
	}
}

func TestBuildHTMLWeatherLine(t *testing.T) {
	line := "Vilnius: dabar 2°C, vėjas 4 m/s, šiandien 0…4°C."
	doc := BuildHTML("2025-03-14", testTitles, testSections(), nil, line, buildAt())

	if !strings.Contains(doc, "dabar 2°C") {
		t.Error("weather line should appear in the hero")
	}

	without := BuildHTML("2025-03-14", testTitles, testSections(), nil, "", buildAt())
	if strings.Contains(without, `class="weather"`) {
		t.Error("no weather pill expected without a weather line")
	}
}

func TestBuildHTMLLinkDomain(t *testing.T) {
	doc := BuildHTML("2025-03-14", testTitles, testSections(), nil, "", buildAt())

	if !strings.Contains(doc, "Skaityti www.lrt.lt") {
		t.Error("card meta should link to the article domain")
	}
}

func TestBuildHTMLIsSelfContained(t *testing.T) {
	doc := BuildHTML("2025-03-14", testTitles, testSections(), nil, "", buildAt())

	for _, needle := range []string{"src=", "href=\"http://"} {
		// The only external references allowed are the article links.
		if strings.Contains(doc, needle) {
			t.Errorf("document should not reference external assets (%q found)", needle)
		}
	}
	if !strings.Contains(doc, "<style>") {
		t.Error("styles must be inlined")
	}
}
