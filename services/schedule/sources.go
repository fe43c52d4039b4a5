package schedule

import (
	"context"
	"time"

	"detailing/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BusySource yields the occupied intervals one backend knows about for a civil date.
type BusySource interface {
	Name() string
	FetchForDate(ctx context.Context, date string) ([]models.OccupiedInterval, error)
}

// DefaultSourceTimeout replaces a SourceConfig timeout that is zero or negative.
const DefaultSourceTimeout = 5 * time.Second

// SourceConfig pairs a source with the timeout it is allowed per fetch.
type SourceConfig struct {
	Source  BusySource
	Timeout time.Duration
}

// FetchObserver is told how each source fetch went. err is nil on success.
type FetchObserver interface {
	ObserveFetch(source string, elapsed time.Duration, err error)
}

// Aggregator merges the busy intervals of every configured source.
type Aggregator struct {
	sources  []SourceConfig
	logger   *zap.Logger
	observer FetchObserver
}

func NewAggregator(logger *zap.Logger, sources ...SourceConfig) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	bounded := make([]SourceConfig, len(sources))
	for i, sc := range sources {
		if sc.Timeout <= 0 {
			sc.Timeout = DefaultSourceTimeout
		}
		bounded[i] = sc
	}
	return &Aggregator{sources: bounded, logger: logger}
}

// WithObserver attaches o to every later fetch and returns a.
func (a *Aggregator) WithObserver(o FetchObserver) *Aggregator {
	a.observer = o
	return a
}

// OccupiedForDate fetches all sources concurrently, each under its own timeout.
// A source that fails or times out contributes nothing; the call itself never fails.
func (a *Aggregator) OccupiedForDate(ctx context.Context, date string) []models.OccupiedInterval {
	results := make([][]models.OccupiedInterval, len(a.sources))

	var g errgroup.Group
	for i, sc := range a.sources {
		g.Go(func() error {
			results[i] = a.fetch(ctx, sc, date)
			return nil
		})
	}
	_ = g.Wait()

	var merged []models.OccupiedInterval
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged
}

func (a *Aggregator) fetch(ctx context.Context, sc SourceConfig, date string) []models.OccupiedInterval {
	fetchCtx, cancel := context.WithTimeout(ctx, sc.Timeout)
	defer cancel()

	type outcome struct {
		intervals []models.OccupiedInterval
		err       error
	}
	done := make(chan outcome, 1)
	started := time.Now()
	go func() {
		intervals, err := sc.Source.FetchForDate(fetchCtx, date)
		done <- outcome{intervals, err}
	}()

	var intervals []models.OccupiedInterval
	var err error
	// Sources that ignore ctx must still not hold up the others.
	select {
	case res := <-done:
		intervals, err = res.intervals, res.err
	case <-fetchCtx.Done():
		err = fetchCtx.Err()
	}
	if a.observer != nil {
		a.observer.ObserveFetch(sc.Source.Name(), time.Since(started), err)
	}
	if err != nil {
		a.logger.Warn("Busy source unavailable, continuing without it",
			zap.String("source", sc.Source.Name()),
			zap.String("date", date),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err))
		return nil
	}
	a.logger.Debug("Busy source fetched",
		zap.String("source", sc.Source.Name()),
		zap.String("date", date),
		zap.Int("intervals", len(intervals)))
	return intervals
}
