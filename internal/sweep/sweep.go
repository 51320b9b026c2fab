// Package sweep runs the scheduled campaign-deadline job: funding projects
// whose end date has passed without reaching goal are marked failed.
package sweep

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/ilqareskerov/AccessDenied/internal/service"
)

// Sweeper owns the cron schedule for campaign expiry.
type Sweeper struct {
	svc  *service.Service
	log  *logrus.Logger
	cron *cron.Cron
}

// NewSweeper initializes a sweeper around the given service.
func NewSweeper(svc *service.Service, log *logrus.Logger) *Sweeper {
	return &Sweeper{svc: svc, log: log, cron: cron.New()}
}

// Start registers the expiry job with the given cron schedule and starts the
// scheduler.
func (s *Sweeper) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Infof("Campaign sweeper started with schedule %q", schedule)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Sweeper) run() {
	if _, err := s.svc.ExpireOverdueCampaigns(context.Background()); err != nil {
		s.log.Errorf("Campaign sweep failed: %v", err)
	}
}
