package scheduler

import (
	"context"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron/v3"

	"github.com/ManuelReschke/VendaBot/app/repository"
	"github.com/ManuelReschke/VendaBot/internal/pkg/metrics"
	"github.com/ManuelReschke/VendaBot/internal/pkg/realtime"
	"github.com/ManuelReschke/VendaBot/internal/pkg/statistics"
)

const (
	ExpireSpec  = "@every 1m"
	RefreshSpec = "@every 5m"
	jobTimeout  = 30 * time.Second
)

// Scheduler runs the periodic maintenance jobs.
type Scheduler struct {
	cron     *cron.Cron
	repos    *repository.Repositories
	stats    *statistics.Service
	notifier realtime.Notifier
	now      func() time.Time
}

func New(repos *repository.Repositories, stats *statistics.Service, notifier realtime.Notifier) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		repos:    repos,
		stats:    stats,
		notifier: notifier,
		now:      time.Now,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(ExpireSpec, s.runExpire); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(RefreshSpec, s.runRefresh); err != nil {
		return err
	}
	s.cron.Start()
	fiberlog.Infof("[CRON] jobs started: subscription expiry (%s), stats refresh (%s)", ExpireSpec, RefreshSpec)
	return nil
}

// Stop stops the loop and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runExpire() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if _, err := s.ExpireSubscriptions(ctx); err != nil {
		fiberlog.Errorf("[CRON] Error expiring subscriptions: %v", err)
	}
}

func (s *Scheduler) runRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if _, err := s.stats.Refresh(ctx); err != nil {
		fiberlog.Errorf("[CRON] Error refreshing statistics: %v", err)
	}
}

// ExpireSubscriptions deactivates subscriptions past their end date and
// announces each affected server. It returns the number of expired rows.
func (s *Scheduler) ExpireSubscriptions(ctx context.Context) (int, error) {
	expired, err := s.repos.ServerSubscription.ExpireEnded(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if len(expired) == 0 {
		return 0, nil
	}
	metrics.RecordExpired(len(expired))
	fiberlog.Infof("[CRON] Expired %d subscription(s)", len(expired))

	for _, sub := range expired {
		server, err := s.repos.Server.GetByID(ctx, sub.ServerID)
		if err != nil {
			fiberlog.Warnf("[CRON] server %d of subscription %d: %v", sub.ServerID, sub.ID, err)
			continue
		}
		if s.notifier == nil {
			continue
		}
		if err := s.notifier.Broadcast(realtime.EventServerStatusChange, server); err != nil {
			fiberlog.Warnf("[CRON] broadcasting server %d: %v", server.ID, err)
		}
	}
	return len(expired), nil
}
