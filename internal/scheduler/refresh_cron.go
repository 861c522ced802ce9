package cron

import (
	"context"

	"github.com/Niffb/Livwishlist/internal/jobs"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartPriceRefreshJobs schedules the periodic price refresh. The schedule
// comes from configuration; an invalid expression is logged and the job is
// simply not scheduled.
func StartPriceRefreshJobs(refresher *jobs.PriceRefresher, schedule string) {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		if err := refresher.RunScan(context.Background()); err != nil {
			logrus.WithError(err).Error("Price refresh scan failed")
		}
	})
	if err != nil {
		logrus.WithError(err).WithField("schedule", schedule).Error("Invalid price refresh schedule")
		return
	}

	c.Start()
	logrus.WithField("schedule", schedule).Info("Price refresh cron started")
}
