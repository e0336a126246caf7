// Package scheduler runs the periodic valuation snapshot job.
package scheduler

import (
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/robfig/cron/v3"

	"github.com/openalpha/piggy-vault/metrics"
	"github.com/openalpha/piggy-vault/recorder"
	"github.com/openalpha/piggy-vault/x/vault/keeper"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Keeper   *keeper.Keeper
	Recorder recorder.Recorder

	logger log.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(k *keeper.Keeper, rec recorder.Recorder, logger log.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Keeper:   k,
		Recorder: rec,
		logger:   logger.With("module", "scheduler"),
	}
}

// RegisterAll registers the valuation snapshot task.
func (s *Scheduler) RegisterAll(valuationCron string) error {
	if _, err := s.Cron.AddFunc(valuationCron, s.valuationTask); err != nil {
		return fmt.Errorf("register valuation task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info("Scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.logger.Info("Scheduler stopped")
}

// RunValuationNow executes the valuation task immediately.
func (s *Scheduler) RunValuationNow() {
	s.valuationTask()
}

func (s *Scheduler) valuationTask() {
	value, err := s.Keeper.OpenPositionValue()
	if err != nil {
		s.logger.Error("Valuation snapshot failed", "error", err)
		return
	}

	now := s.Keeper.Now().Unix()
	if err := s.Recorder.RecordValuation(&recorder.ValuationSnapshot{
		Timestamp:         now,
		OpenPositionValue: value.String(),
	}); err != nil {
		s.logger.Error("Record valuation failed", "error", err)
	}

	if f, err := math.LegacyNewDecFromIntWithPrec(value, 18).Float64(); err == nil {
		metrics.GetCollector().UpdateOpenPositionValue(f)
	}

	s.logger.Info("Valuation snapshot", "open_position_value", value.String())
}
