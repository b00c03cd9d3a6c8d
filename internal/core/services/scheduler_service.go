package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
	portsrepo "github.com/flowhive/flowhive_backend/internal/core/ports/repositories"
	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/observability"
)

// WeeklySchedule configures the weekly report job.
type WeeklySchedule struct {
	Enabled    bool
	Day        string // mon..sun
	Hour       int
	Timezone   string
	Recipients []string
}

var cronDays = map[string]bool{"mon": true, "tue": true, "wed": true, "thu": true, "fri": true, "sat": true, "sun": true}

// CronSpec returns the five-field cron expression for the schedule.
func (w WeeklySchedule) CronSpec() string {
	day := strings.ToLower(strings.TrimSpace(w.Day))
	if !cronDays[day] {
		day = "sun"
	}
	hour := w.Hour
	if hour < 0 || hour > 23 {
		hour = 17
	}
	return fmt.Sprintf("0 %d * * %s", hour, day)
}

func (w WeeklySchedule) location() (*time.Location, error) {
	if w.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(w.Timezone)
}

type schedulerService struct {
	schedule      WeeklySchedule
	reportingRepo portsrepo.ReportingRepository
	reporting     portssvc.ReportingService
	logger        *slog.Logger
	now           func() time.Time

	mu   sync.Mutex
	cron *cron.Cron
}

// NewSchedulerService creates the weekly report scheduler. Nothing runs until Start.
func NewSchedulerService(
	schedule WeeklySchedule,
	reportingRepo portsrepo.ReportingRepository,
	reporting portssvc.ReportingService,
	logger *slog.Logger,
) portssvc.ReportScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &schedulerService{
		schedule:      schedule,
		reportingRepo: reportingRepo,
		reporting:     reporting,
		logger:        logger.With(slog.String("component", "weekly_report_scheduler")),
		now:           time.Now,
	}
}

var _ portssvc.ReportScheduler = (*schedulerService)(nil)

func (s *schedulerService) Start() error {
	if !s.schedule.Enabled {
		s.logger.Info("Weekly report scheduler disabled")
		return nil
	}
	loc, err := s.schedule.location()
	if err != nil {
		return fmt.Errorf("invalid weekly report timezone %q: %w", s.schedule.Timezone, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return errors.New("weekly report scheduler already started")
	}

	c := cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	spec := s.schedule.CronSpec()
	if _, err := c.AddFunc(spec, s.runScheduled); err != nil {
		return fmt.Errorf("invalid weekly report schedule %q: %w", spec, err)
	}
	c.Start()
	s.cron = c
	s.logger.Info("Weekly report scheduler started",
		slog.String("spec", spec), slog.String("timezone", loc.String()))
	return nil
}

func (s *schedulerService) Stop(ctx context.Context) error {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()
	if c == nil {
		return nil
	}

	done := c.Stop().Done()
	select {
	case <-done:
		s.logger.Info("Weekly report scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *schedulerService) runScheduled() {
	ctx := context.Background()
	summary, err := s.RunWeekly(ctx)
	if err != nil {
		s.logger.Error("Weekly report run failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("Weekly report run finished",
		slog.String("date_from", summary.Range.FromString()),
		slog.String("date_to", summary.Range.ToString()),
		slog.Int("processed", summary.WorkspacesProcessed),
		slog.Int("skipped", summary.WorkspacesSkipped),
		slog.Int("failed", summary.WorkspacesFailed))
}

// RunWeekly distributes last week's report for every workspace. Workspace failures are
// counted and do not stop the run.
func (s *schedulerService) RunWeekly(ctx context.Context) (*domain.WeeklyRunSummary, error) {
	now := s.now()
	if loc, err := s.schedule.location(); err == nil {
		now = now.In(loc)
	}
	rng := domain.LastCompletedWeek(now)
	summary := &domain.WeeklyRunSummary{Range: rng, StartedAt: now}

	counts, err := s.reportingRepo.WorkspaceActivityCounts(ctx, rng)
	if err != nil {
		s.logger.Error("Failed to count workspace activities", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to count workspace activities: %w", err)
	}

	for _, wc := range counts {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if wc.ActivityCount == 0 {
			summary.WorkspacesSkipped++
			continue
		}
		if err := s.runWorkspace(ctx, wc.WorkspaceID, rng); err != nil {
			summary.WorkspacesFailed++
			s.logger.Error("Weekly report failed for workspace",
				slog.String("workspace_id", wc.WorkspaceID),
				slog.String("workspace_name", wc.WorkspaceName),
				slog.String("error", err.Error()))
			continue
		}
		summary.WorkspacesProcessed++
	}

	observability.RecordWeeklyRun(s.now())
	return summary, nil
}

func (s *schedulerService) runWorkspace(ctx context.Context, workspaceID string, rng domain.DateRange) error {
	report, err := s.reporting.BuildReport(ctx, workspaceID, rng)
	if err != nil {
		return err
	}
	individual, err := s.reporting.SendIndividual(ctx, *report)
	if err != nil {
		return err
	}
	s.logger.Info("Weekly individual reports sent",
		slog.String("workspace_id", workspaceID),
		slog.Int("sent", individual.SentCount),
		slog.Int("failed", individual.FailedCount))

	if len(s.schedule.Recipients) > 0 {
		if _, err := s.reporting.SendBulk(ctx, *report, s.schedule.Recipients); err != nil {
			return err
		}
	}
	return nil
}
