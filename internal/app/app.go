package app

import (
	"context"
	"fmt"
	"time"

	"lrtdigest/internal/config"
	"lrtdigest/internal/digest"
	"lrtdigest/internal/feed"
	"lrtdigest/internal/gemini"
	"lrtdigest/internal/logger"
	"lrtdigest/internal/mailer"
	"lrtdigest/internal/metrics"
	"lrtdigest/internal/report"
	"lrtdigest/internal/scraper"
	"lrtdigest/internal/weather"
)

// Run executes one full digest cycle: resolve the mode from the local
// clock, collect and filter the feeds, summarize, render and deliver.
// Outside a scheduled digest hour it is a pure no-op.
func Run(ctx context.Context) error {
	started := time.Now()
	defer func() {
		metrics.Global.RecordRunDuration(time.Since(started))
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger.Init(cfg.Debug)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("loading timezone %q: %w", cfg.Timezone, err)
	}

	// Delivery configuration problems are fatal and must surface before
	// any network work, not after an expensive summarization pass.
	m, err := mailer.New(mailer.Config{
		Recipients: cfg.Recipients,
		From:       cfg.FromEmail,
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		User:       cfg.SMTPUser,
		Password:   cfg.SMTPPassword,
	})
	if err != nil {
		return fmt.Errorf("mail config: %w", err)
	}

	now := time.Now().In(loc)
	mode := digest.ResolveMode(now)
	if mode == digest.ModeNone {
		logger.Info("not a scheduled digest hour, exiting", "hour", now.Hour())
		return nil
	}

	windowStart, windowEnd := digest.Window(mode, now)
	dateStr := now.Format("2006-01-02")
	titles := digest.TitlesFor(mode, dateStr)
	logger.Info("digest run starting",
		"mode", mode.String(),
		"window_start", windowStart.Format(time.RFC3339),
		"window_end", windowEnd.Format(time.RFC3339),
	)

	topics, err := feed.LoadTopics(cfg.TopicsConfigPath)
	if err != nil {
		return fmt.Errorf("loading topics config: %w", err)
	}

	collector := feed.NewCollector(loc, cfg.RequestTimeout)
	collected := make([]digest.TopicCandidates, 0, len(topics))
	for _, t := range topics {
		collected = append(collected, digest.TopicCandidates{
			Topic:      t.Name,
			Candidates: collector.Collect(ctx, t),
		})
	}

	gem, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return fmt.Errorf("creating Gemini client: %w", err)
	}
	defer gem.Close()

	sc := scraper.New(cfg.RequestTimeout)
	pipeline := digest.NewPipeline(sc, sc, gem, cfg.BreakingWindow, cfg.MaxPerTopic(mode.String()))
	result := pipeline.Build(ctx, collected, windowStart, windowEnd, now)
	logger.Info("pipeline done", "items", len(result.Flat))

	highlights := digest.PickHighlights(ctx, gem, result.Flat, mode)

	weatherLine := ""
	if cfg.IncludeWeather {
		weatherLine = weather.New(cfg.RequestTimeout).VilniusSummary(ctx)
	}

	htmlDoc := report.BuildHTML(dateStr, titles, result.Sections, highlights, weatherLine, time.Now().In(loc))

	if err := m.Send(titles.Subject, report.PlainTextBody, htmlDoc); err != nil {
		metrics.Global.SetError(err.Error())
		return fmt.Errorf("delivering digest: %w", err)
	}

	metrics.Global.SetLastRun()
	logger.Info("digest run finished", "mode", mode.String(), "items", len(result.Flat), "recipients", len(cfg.Recipients))
	return nil
}
