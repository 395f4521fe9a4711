// Package pipeline orchestrates a full scrape run: discover profile URLs,
// fetch names then stats, normalize the scraped fields into typed records,
// filter out low-sample fighters, and persist the survivors.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/database"
	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/fighter"
	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/notify"
	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/scraper"
)

// runTopic is the logical topic scrape run events are published under.
const runTopic = "scrape-runs"

// Report summarizes one completed run.
type Report struct {
	RunID      string
	Discovered int
	Fetched    int
	Filtered   int
	Inserted   int
	Updated    int
	Elapsed    time.Duration
}

// Driver owns the run lifecycle. Collaborators are injected so tests can
// substitute fakes for the network, the store, and the clock.
type Driver struct {
	discoverer  *scraper.Discoverer
	coordinator *scraper.Coordinator
	store       database.Provider
	publisher   notify.Publisher
	clock       scraper.Clock
	logger      *zap.Logger
}

// NewDriver wires the run collaborators together.
func NewDriver(
	discoverer *scraper.Discoverer,
	coordinator *scraper.Coordinator,
	store database.Provider,
	publisher notify.Publisher,
	clock scraper.Clock,
	logger *zap.Logger,
) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		discoverer:  discoverer,
		coordinator: coordinator,
		store:       store,
		publisher:   publisher,
		clock:       clock,
		logger:      logger,
	}
}

// Run executes one scrape run end to end and returns its Report. Discovering
// zero profiles is a legitimate empty run, not an error. Persistence failures
// abort the run since partial silent loss is worse than a retryable failure.
func (d *Driver) Run(ctx context.Context) (Report, error) {
	start := d.clock.Now()
	report := Report{RunID: uuid.NewString()}
	d.logger.Info("scrape run starting", zap.String("run_id", report.RunID))

	urls := d.discoverer.Discover(ctx)
	report.Discovered = len(urls)
	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("discovery interrupted: %w", err)
	}
	d.logger.Info("discovery complete",
		zap.String("run_id", report.RunID), zap.Int("profiles", len(urls)))

	profiles := scraper.NewProfiles(urls)
	d.coordinator.FetchNames(ctx, profiles)
	d.coordinator.FetchStats(ctx, profiles)
	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("fetch interrupted: %w", err)
	}
	report.Fetched = len(profiles)

	records := make([]fighter.Record, 0, len(profiles))
	for _, p := range profiles {
		rec := fighter.NewRecord(p.URL, fighter.CleanFields(p.Fields), start)
		if rec.LowSample {
			report.Filtered++
			continue
		}
		records = append(records, rec)
	}

	inserted, updated, err := d.store.SaveFighters(ctx, records)
	if err != nil {
		return report, fmt.Errorf("save fighters: %w", err)
	}
	report.Inserted = inserted
	report.Updated = updated
	report.Elapsed = d.clock.Now().Sub(start)

	d.publishReport(ctx, report)
	d.logger.Info("scrape run complete",
		zap.String("run_id", report.RunID),
		zap.Int("discovered", report.Discovered),
		zap.Int("fetched", report.Fetched),
		zap.Int("filtered", report.Filtered),
		zap.Int("inserted", report.Inserted),
		zap.Int("updated", report.Updated),
		zap.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

// publishReport emits the run event best effort; a notify failure never fails
// a run whose data is already persisted.
func (d *Driver) publishReport(ctx context.Context, report Report) {
	if d.publisher == nil {
		return
	}
	event := notify.RunEvent{
		RunID:      report.RunID,
		Discovered: report.Discovered,
		Fetched:    report.Fetched,
		Filtered:   report.Filtered,
		Inserted:   report.Inserted,
		Updated:    report.Updated,
		ElapsedMS:  report.Elapsed.Milliseconds(),
		FinishedAt: d.clock.Now().UTC().Format(time.RFC3339),
	}
	if _, err := d.publisher.Publish(ctx, runTopic, event); err != nil {
		d.logger.Warn("run event publish failed",
			zap.String("run_id", report.RunID), zap.Error(err))
	}
}
