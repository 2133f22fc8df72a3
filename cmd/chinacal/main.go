package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"chinacal/internal/config"
	"chinacal/internal/dataset"
	"chinacal/internal/feed"
	"chinacal/internal/festival"
	"chinacal/internal/holiday"
	appLog "chinacal/internal/log"
	"chinacal/internal/lunar"
)

func main() {
	appLog.Info("chinacal starting", "version", "2.0")

	conf, err := config.Load(config.DefaultPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", config.DefaultPath)
		os.Exit(1)
	}

	appLog.Info("effective config",
		"data_url", conf.DataURL,
		"output_file", conf.OutputFile,
		"start_year", conf.StartYear,
		"end_year", conf.EndYear,
		"workday_window_days", conf.WorkdayWindowDays,
		"refresh", conf.RefreshCron,
	)

	// Root context with cancellation on SIGINT/SIGTERM.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	if conf.RefreshCron == "" {
		// Single-shot mode: the external scheduler owns repetition.
		if err := run(ctx, conf); err != nil {
			appLog.Error("run failed", err)
			os.Exit(1)
		}
		appLog.Info("chinacal done", "output_file", conf.OutputFile)
		return
	}

	// Scheduled mode: regenerate on the configured cron expression. The
	// job function is synchronous, so runs never overlap.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(conf.RefreshCron, func() {
		if err := run(ctx, conf); err != nil {
			appLog.Error("scheduled run failed", err)
		}
	}); err != nil {
		appLog.Error("invalid refresh schedule", err, "refresh", conf.RefreshCron)
		os.Exit(1)
	}

	// First generation happens immediately; the schedule covers the rest.
	if err := run(ctx, conf); err != nil {
		appLog.Error("run failed", err)
		os.Exit(1)
	}

	scheduler.Start()
	<-ctx.Done()
	scheduler.Stop()

	appLog.Info("chinacal exiting")
}

// run executes one full generation: fetch → parse → derive → publish.
func run(ctx context.Context, conf *config.Config) error {
	now := time.Now()

	fetcher := dataset.NewFetcher(conf.DataURL, conf.DataFile, conf.FetchTimeout())
	body, err := fetcher.Fetch(ctx)
	if err != nil {
		return err
	}

	doc, err := dataset.Parse(body)
	if err != nil {
		return err
	}

	cal := &feed.Calendar{StartYear: conf.StartYear, EndYear: conf.EndYear}

	groups := holiday.GroupByName(doc)
	cal.Add(holiday.Events(groups, conf.WorkdayWindowDays, now)...)

	deriver := &festival.Deriver{
		StartYear: conf.StartYear,
		EndYear:   conf.EndYear,
		Oracle:    lunar.Calendar{},
		CacheFile: conf.TraditionalCacheFile,
	}
	cal.Add(deriver.Derive(now)...)

	if err := cal.Publish(conf.OutputFile, now); err != nil {
		return err
	}

	appLog.Info("feed generated",
		"output_file", conf.OutputFile,
		"group_count", len(groups),
		"event_count", len(cal.Events),
	)
	return nil
}
