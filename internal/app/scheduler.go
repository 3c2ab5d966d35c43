package app

import (
	"context"
	"time"

	"github.com/Nopass0/repitnew_backend/internal/model"
	"github.com/Nopass0/repitnew_backend/internal/service"
	"go.uber.org/zap"
)

// DebtNotifier получает ежедневную сводку по задолженности
type DebtNotifier interface {
	SendDailySummary(ctx context.Context, stats model.Stats, unpaid []model.Lesson) error
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	scheduleService *service.ScheduleService
	notifier        DebtNotifier // может быть nil
	logger          *zap.Logger
	stopChan        chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(scheduleService *service.ScheduleService, notifier DebtNotifier, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduleService: scheduleService,
		notifier:        notifier,
		logger:          logger,
		stopChan:        make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runDailyRefreshTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runDailyRefreshTask раз в сутки перегенерирует уроки и выполняет сверку
func (s *Scheduler) runDailyRefreshTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.refresh(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refresh(ctx)
		case <-s.stopChan:
			s.logger.Info("Daily refresh task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Daily refresh task cancelled")
			return
		}
	}
}

// refresh перегенерирует уроки, сверяет их с предоплатами и
// рассылает сводку по задолженности
func (s *Scheduler) refresh(ctx context.Context) {
	s.logger.Info("Starting daily lessons refresh")

	if err := s.scheduleService.RefreshLessons(ctx, time.Now()); err != nil {
		s.logger.Error("Failed to refresh lessons", zap.Error(err))
		return
	}

	lessons, stats, err := s.scheduleService.ReconcileAll(ctx)
	if err != nil {
		s.logger.Error("Failed to reconcile lessons", zap.Error(err))
		return
	}

	s.logger.Info("Daily refresh completed",
		zap.Int("lessons", len(lessons)),
		zap.Int("debt", stats.Debt),
	)

	if s.notifier == nil || stats.Debt == 0 {
		return
	}

	var unpaid []model.Lesson
	for _, l := range lessons {
		if !l.IsCancelled && l.HasPassed && l.EventType == model.LessonUnpaid {
			unpaid = append(unpaid, l)
		}
	}

	if err := s.notifier.SendDailySummary(ctx, stats, unpaid); err != nil {
		s.logger.Error("Failed to send debt summary", zap.Error(err))
	}
}
