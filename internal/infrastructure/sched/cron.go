// Package sched wires the periodic jobs: currently just the daily overdue
// sweep over open loans.
package sched

import (
	"context"
	"log"
	"time"

	loanUC "lamf-backend/internal/usecase/loan"

	"github.com/robfig/cron/v3"
)

// StartOverdueSweep schedules the sweep on the given cron spec (e.g.
// "@daily" or "15 0 * * *") and returns the running scheduler so the caller
// can Stop it on shutdown.
func StartOverdueSweep(spec string, uc *loanUC.Usecase) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		res, err := uc.MarkOverdue(ctx, time.Now().UTC())
		if err != nil {
			log.Printf("overdue sweep failed: %v", err)
			return
		}
		log.Printf("overdue sweep: scanned=%d flagged_loans=%d flagged_emis=%d failed=%d",
			res.LoansScanned, res.LoansFlagged, res.EMIsFlagged, res.Failed)
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("overdue sweep scheduled (%s)", spec)
	return c, nil
}
