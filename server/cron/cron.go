package cron

import (
	"time"

	"github.com/go-co-op/gocron"
)

// NewScheduler returns a scheduler running in timeZone. Unknown or empty
// zones fall back to UTC.
func NewScheduler(timeZone string) *gocron.Scheduler {
	location, err := time.LoadLocation(timeZone)
	if err != nil || timeZone == "" {
		location = time.UTC
	}

	scheduler := gocron.NewScheduler(location)
	scheduler.TagsUnique()

	return scheduler
}
