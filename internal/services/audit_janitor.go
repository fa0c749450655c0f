package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/subsidyhub/backend/internal/infrastructure/audit"
)

// JanitorConfig controls how often and how far back the audit log is pruned.
type JanitorConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// AuditJanitor prunes old audit entries on a schedule.
type AuditJanitor struct {
	store  *audit.Store
	logger *zap.Logger
	cron   *cron.Cron
	cfg    JanitorConfig
}

func NewAuditJanitor(store *audit.Store, logger *zap.Logger, cfg JanitorConfig) *AuditJanitor {
	if cfg.Interval < time.Second {
		if cfg.Interval > 0 {
			cfg.Interval = time.Second
		} else {
			cfg.Interval = time.Hour
		}
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 90 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	j := &AuditJanitor{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	if _, err := j.cron.AddFunc(schedule, j.prune); err != nil {
		j.logger.Error("audit janitor not scheduled",
			zap.String("schedule", schedule), zap.Error(err))
	}

	return j
}

// Start launches the cron scheduler.
func (j *AuditJanitor) Start() {
	if j == nil || j.cron == nil {
		return
	}
	j.cron.Start()
	j.logger.Info("audit janitor started",
		zap.Duration("interval", j.cfg.Interval),
		zap.Duration("retention", j.cfg.Retention))
}

// Stop gracefully stops the scheduler.
func (j *AuditJanitor) Stop() {
	if j == nil || j.cron == nil {
		return
	}
	<-j.cron.Stop().Done()
	j.logger.Info("audit janitor stopped")
}

func (j *AuditJanitor) prune() {
	cutoff := time.Now().Add(-j.cfg.Retention)
	if err := j.store.Cleanup(cutoff); err != nil {
		j.logger.Error("audit cleanup failed", zap.Error(err))
	}
}
