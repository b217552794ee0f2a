// Package schedule turns a rule's frequency into concrete archive times.
package schedule

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"archive-keeper/models"
)

var descriptors = map[models.Frequency]string{
	models.FrequencyHourly:  "@hourly",
	models.FrequencyDaily:   "@daily",
	models.FrequencyWeekly:  "@weekly",
	models.FrequencyMonthly: "@monthly",
}

// Descriptor returns the cron descriptor for f.
func Descriptor(f models.Frequency) (string, error) {
	d, ok := descriptors[f]
	if !ok {
		return "", fmt.Errorf("no schedule for frequency %q", f)
	}
	return d, nil
}

// For returns the cron schedule a rule with frequency f runs on.
func For(f models.Frequency) (cron.Schedule, error) {
	d, err := Descriptor(f)
	if err != nil {
		return nil, err
	}
	return cron.ParseStandard(d)
}

// NextRun returns the first archive time of rule strictly after now. Rules
// whose start date lies in the future wait for it.
func NextRun(rule models.Rule, now time.Time) (time.Time, error) {
	sched, err := For(rule.Frequency)
	if err != nil {
		return time.Time{}, err
	}
	from := now
	if start, err := models.ParseTimestamp(rule.StartDate); err == nil && start.After(now) {
		from = start
	}
	return sched.Next(from), nil
}
