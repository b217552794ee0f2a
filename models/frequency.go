package models

import "fmt"

// Frequency is how often a rule archives its URL.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyHourly  Frequency = "hourly"
)

// Frequencies lists the recognised frequencies in display order.
var Frequencies = []Frequency{
	FrequencyDaily,
	FrequencyWeekly,
	FrequencyMonthly,
	FrequencyHourly,
}

// ParseFrequency returns the Frequency named by s.
func ParseFrequency(s string) (Frequency, error) {
	for _, f := range Frequencies {
		if string(f) == s {
			return f, nil
		}
	}
	return "", &ValidationError{
		Field:   "frequency",
		Message: fmt.Sprintf("'%s' is not a valid frequency", s),
	}
}
