// Package jobs holds the scheduled maintenance work of the service.
package jobs

import (
	"context"
	"log"
	"time"

	"quiz-session-service/internal/repository"

	"github.com/robfig/cron/v3"
)

// DailyRollover retires active daily sessions from previous days so every
// calendar day starts with a fresh set.
type DailyRollover struct {
	Sessions *repository.SessionRepository
	cron     *cron.Cron
}

func NewDailyRollover(sessions *repository.SessionRepository) *DailyRollover {
	return &DailyRollover{
		Sessions: sessions,
		cron:     cron.New(),
	}
}

// Start schedules the rollover at midnight server time and runs one catch-up
// pass immediately, covering restarts that missed the schedule.
func (j *DailyRollover) Start() error {
	if _, err := j.cron.AddFunc("0 0 * * *", j.run); err != nil {
		return err
	}
	j.cron.Start()
	go j.run()
	return nil
}

func (j *DailyRollover) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *DailyRollover) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	retired, err := j.Sessions.DeactivateDailyBefore(ctx, midnight)
	if err != nil {
		log.Printf("daily rollover failed: %v", err)
		return
	}
	if retired > 0 {
		log.Printf("daily rollover retired %d sessions", retired)
	}
}
