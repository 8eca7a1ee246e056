package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper runs the nightly overdue sweep. Loans past their due date
// are flipped to overdue on a cron schedule shortly after midnight.
type Sweeper struct {
	loans *LoanService
	spec  string
	cron  *cron.Cron
}

// NewSweeper creates the sweeper with a cron spec like "5 0 * * *".
func NewSweeper(loans *LoanService, spec string) *Sweeper {
	return &Sweeper{loans: loans, spec: spec}
}

// Start schedules the sweep and runs one immediately so a restart
// never leaves stale statuses until the next midnight.
func (s *Sweeper) Start() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.spec, s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("Overdue sweeper started (spec %q)", s.spec)

	go s.Sweep()
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	if s.cron == nil {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Overdue sweeper stopped")
}

// Sweep marks every open loan past its due date as overdue.
func (s *Sweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := s.loans.MarkOverdue(ctx, time.Now())
	if err != nil {
		log.Printf("Overdue sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Overdue sweep marked %d loan(s)", n)
	}
}
