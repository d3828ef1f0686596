package report

import (
	"fmt"
	"html"
	nurl "net/url"
	"strings"
	"time"

	"lrtdigest/internal/digest"
)

// PlainTextBody is the text/plain fallback attached to every message for
// clients that refuse HTML.
const PlainTextBody = "Peržiūrėkite šį laišką HTML režimu."

// BuildHTML renders the full self-contained digest document. It is a
// pure function of its inputs; no styling or assets are referenced
// outside the returned string.
func BuildHTML(dateStr string, titles digest.Titles, sections []digest.Section, highlights []string, weatherLine string, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString("<!doctype html>\n<html lang=\"lt\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	b.WriteString(fmt.Sprintf("<title>%s</title>\n", esc(titles.Header)))
	b.WriteString("<style>" + styles + "</style>\n</head>\n<body>\n")

	b.WriteString(`<div class="topbar"><div class="topbar-inner"><div class="brand">` +
		`<div class="logo">LRT</div><div>Naujienų santrauka <small>RSS + AI</small></div>` +
		`</div></div></div>` + "\n")

	b.WriteString(`<div class="wrap">` + "\n")

	// Hero
	b.WriteString(`<section class="hero">` + "\n")
	b.WriteString(fmt.Sprintf("<h1>%s</h1>\n", esc(titles.Header)))
	b.WriteString(fmt.Sprintf("<p class=\"sub\">%s</p>\n", esc(titles.Subtitle)))
	b.WriteString(`<div class="meta2">`)
	b.WriteString(`<span class="pill"><b>Šaltinis:</b> LRT RSS</span>`)
	b.WriteString(fmt.Sprintf(`<span class="pill"><b>Data:</b> %s</span>`, esc(dateStr)))
	b.WriteString(fmt.Sprintf(`<span class="pill"><b>Sugeneruota:</b> %s</span>`, esc(generatedAt.Format("2006-01-02 15:04"))))
	if weatherLine != "" {
		b.WriteString(fmt.Sprintf(`<div class="weather"><span class="weather-dot"></span><span>%s</span></div>`, esc(weatherLine)))
	}
	b.WriteString("</div>\n</section>\n")

	writeHighlights(&b, highlights)

	wroteSection := false
	for _, s := range sections {
		if len(s.Items) == 0 {
			continue
		}
		writeSection(&b, s)
		wroteSection = true
	}
	if !wroteSection {
		b.WriteString(`<div class="empty">Šiuo metu naujienų šiame lange nerasta. Bandyk vėliau.</div>` + "\n")
	}

	b.WriteString(`<div class="footer">Pastaba: santraukos generuojamos automatiškai; detales tikrink pilnuose straipsniuose.</div>` + "\n")
	b.WriteString("</div>\n</body>\n</html>\n")

	return b.String()
}

func writeHighlights(b *strings.Builder, highlights []string) {
	if len(highlights) == 0 {
		return
	}
	b.WriteString(`<section class="top3"><div class="top3-head">` +
		`<div class="top3-kicker">Svarbiausia</div>` +
		`<h2 class="top3-title">Top 3 šiandien</h2></div><ol class="top3-list">`)
	for _, line := range highlights {
		line = strings.TrimSpace(strings.TrimLeft(line, "•"))
		b.WriteString(fmt.Sprintf("<li>%s</li>", esc(line)))
	}
	b.WriteString("</ol></section>\n")
}

func writeSection(b *strings.Builder, s digest.Section) {
	b.WriteString(`<section class="topic"><div class="topic-head">`)
	b.WriteString(fmt.Sprintf(`<h2 class="topic-title">%s</h2>`, esc(s.Topic)))
	b.WriteString(fmt.Sprintf(`<div class="topic-count">%d vnt.</div></div><div class="cards">`, len(s.Items)))

	for _, it := range s.Items {
		badge := ""
		if it.IsBreaking {
			badge = `<span class="badge breaking">NAUJA</span>`
		}
		b.WriteString(`<article class="card"><div class="card-top">`)
		b.WriteString(fmt.Sprintf(`<h3 class="card-title">%s%s</h3>`, badge, esc(it.Title)))
		b.WriteString(`<div class="meta">`)
		b.WriteString(fmt.Sprintf(`<span class="meta-item">%s</span>`, esc(it.PublishedHHMM)))
		b.WriteString(`<span class="dot">•</span>`)
		b.WriteString(fmt.Sprintf(`<span class="meta-item">%s</span>`, esc(s.Topic)))
		b.WriteString(`<span class="dot">•</span>`)
		b.WriteString(fmt.Sprintf(`<a class="meta-link" href="%s" target="_blank" rel="noopener noreferrer">Skaityti %s</a>`,
			esc(it.URL), esc(linkDomain(it.URL))))
		b.WriteString("</div></div>")
		b.WriteString(fmt.Sprintf(`<div class="card-body">%s</div>`, summaryHTML(it.Summary)))
		b.WriteString("</article>")
	}

	b.WriteString("</div></section>\n")
}

// summaryHTML turns a (possibly bulleted) summary into an HTML list; a
// summary with no usable lines is emitted escaped as-is.
func summaryHTML(summary string) string {
	var lines []string
	for _, ln := range strings.Split(summary, "\n") {
		ln = strings.TrimSpace(strings.Trim(strings.TrimSpace(ln), "-• "))
		if ln != "" {
			lines = append(lines, ln)
		}
	}
	if len(lines) == 0 {
		return esc(summary)
	}

	var b strings.Builder
	b.WriteString(`<ul class="summary-list">`)
	for _, ln := range lines {
		b.WriteString(fmt.Sprintf("<li>%s</li>", esc(ln)))
	}
	b.WriteString("</ul>")
	return b.String()
}

func linkDomain(raw string) string {
	u, err := nurl.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Host
}

func esc(s string) string {
	return html.EscapeString(s)
}

const styles = `
:root { --bg:#f3f4f6; --panel:#ffffff; --text:#111827; --muted:#6b7280; --border:#e5e7eb;
  --shadow:0 8px 24px rgba(17,24,39,0.08); --accent:#0b3d91; --accent-soft:rgba(11,61,145,0.10); --radius:14px; }
* { box-sizing:border-box; }
body { margin:0; background:var(--bg); color:var(--text);
  font-family:ui-sans-serif,system-ui,-apple-system,Segoe UI,Roboto,Helvetica,Arial; line-height:1.55; }
.topbar { background:var(--panel); border-bottom:1px solid var(--border); }
.topbar-inner { max-width:980px; margin:0 auto; padding:12px 16px; display:flex; align-items:center; gap:12px; }
.brand { display:flex; align-items:center; gap:10px; font-weight:800; letter-spacing:0.2px; }
.logo { width:34px; height:34px; border-radius:10px; background:var(--accent); color:#fff;
  display:grid; place-items:center; font-weight:900; }
.brand small { color:var(--muted); font-weight:600; }
.wrap { max-width:980px; margin:18px auto 48px; padding:0 16px; }
.hero { background:var(--panel); border:1px solid var(--border); border-radius:var(--radius);
  box-shadow:var(--shadow); padding:18px 18px 14px; }
.hero h1 { margin:0 0 6px; font-size:22px; }
.hero .sub { margin:0; color:var(--muted); font-size:14px; }
.hero .meta2 { margin-top:10px; display:flex; flex-wrap:wrap; gap:10px; align-items:center;
  color:var(--muted); font-size:13px; }
.pill { border:1px solid var(--border); background:#fff; padding:6px 10px; border-radius:999px;
  display:inline-flex; gap:8px; align-items:center; }
.pill b { color:var(--text); }
.weather { display:inline-flex; align-items:center; gap:8px; padding:6px 10px; border-radius:999px;
  border:1px solid var(--border); background:#fff; }
.weather-dot { width:8px; height:8px; border-radius:999px; background:var(--accent); display:inline-block; }
.top3 { margin-top:14px; background:var(--panel); border:1px solid var(--border);
  border-radius:var(--radius); box-shadow:var(--shadow); padding:16px 18px; }
.top3-kicker { display:inline-block; background:var(--accent-soft); color:var(--accent);
  padding:4px 10px; border-radius:999px; font-weight:700; font-size:12px; }
.top3-title { margin:10px 0 8px; font-size:18px; }
.top3-list { margin:0; padding-left:18px; color:var(--text); }
.top3-list li { margin:6px 0; }
.topic { margin-top:16px; }
.topic-head { display:flex; align-items:baseline; justify-content:space-between; padding:0 2px; margin-bottom:10px; }
.topic-title { margin:0; font-size:16px; }
.topic-count { color:var(--muted); font-size:13px; }
.cards { display:grid; grid-template-columns:1fr; gap:12px; }
@media (min-width:860px) { .cards { grid-template-columns:1fr 1fr; } }
.card { background:var(--panel); border:1px solid var(--border); border-radius:var(--radius);
  box-shadow:var(--shadow); padding:14px 14px 12px; }
.card-title { margin:0; font-size:15px; }
.meta { margin-top:6px; color:var(--muted); font-size:12.5px; display:flex; flex-wrap:wrap; gap:6px; align-items:center; }
.dot { opacity:0.6; }
.meta-link { color:var(--muted); text-decoration:none; border-bottom:1px dotted rgba(107,114,128,0.6); }
.meta-link:hover { color:var(--text); }
.card-body { margin-top:10px; font-size:13.5px; color:var(--text); }
.badge { display:inline-block; margin-right:8px; padding:3px 8px; border-radius:999px;
  font-size:11px; font-weight:900; vertical-align:middle; letter-spacing:0.3px; }
.badge.breaking { background:var(--accent); color:#fff; }
.summary-list { margin:8px 0 0 18px; padding:0; }
.summary-list li { margin-bottom:6px; }
.empty { margin-top:16px; background:var(--panel); border:1px dashed var(--border);
  border-radius:var(--radius); padding:16px; color:var(--muted); text-align:center; }
.footer { margin-top:18px; text-align:center; color:var(--muted); font-size:12px; }
`
