// Package jobs manages background cron tasks.
// scheduler.go sets up the daily point summary post.
package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"ledgerbot/internal/common"
	"ledgerbot/internal/features/points"
	"ledgerbot/internal/gateway"
)

// Scheduler runs the cron jobs.
type Scheduler struct {
	cron          *cron.Cron
	pointsService *points.Service
	gw            gateway.Client
	resolver      *gateway.Resolver

	chatID   int64
	cronSpec string
	topN     int
}

// NewScheduler creates a scheduler in the given location.
func NewScheduler(loc *time.Location, pointsService *points.Service, gw gateway.Client, resolver *gateway.Resolver, chatID int64, cronSpec string, topN int) *Scheduler {
	return &Scheduler{
		cron:          cron.New(cron.WithLocation(loc)),
		pointsService: pointsService,
		gw:            gw,
		resolver:      resolver,
		chatID:        chatID,
		cronSpec:      cronSpec,
		topN:          topN,
	}
}

// Start registers and launches the jobs.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.cronSpec, func() {
		log.Info("[CRON] Posting daily point summary")
		if err := s.postSummary(ctx); err != nil {
			log.WithError(err).Error("[CRON] Summary failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid summary cron spec %q: %w", s.cronSpec, err)
	}

	s.cron.Start()
	log.Infof("Scheduler started (summary: %q)", s.cronSpec)
	return nil
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Scheduler stopped")
}

// postSummary posts the current leaderboard to the chat. Days with an
// empty ledger post nothing.
func (s *Scheduler) postSummary(ctx context.Context) error {
	top, err := s.pointsService.TopBalances(ctx, s.topN)
	if err != nil {
		return err
	}
	if len(top) == 0 {
		log.Debug("[CRON] Ledger empty, skipping summary")
		return nil
	}

	var b strings.Builder
	b.WriteString("🏆 Point leaderboard\n")
	for i, balance := range top {
		who := s.resolver.Resolve(ctx, s.chatID, balance.UserID)
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, who.Label(), common.FormatPoints(balance.Points))
	}

	_, err = s.gw.SendMessage(ctx, s.chatID, b.String())
	return err
}
