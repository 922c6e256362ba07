package services

import (
	"fmt"
	"net/http"
	"time"

	"github.com/yungbote/selfinvest-backend/internal/platform/apierr"
	"github.com/yungbote/selfinvest-backend/internal/types"
)

const dateLayout = "2006-01-02"

// dateOnly truncates a timestamp to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// resolvePeriod maps a period type and reference date onto an inclusive
// [start, end] day range. Weekly periods start on the Monday of the
// reference date's ISO week; monthly periods cover the full calendar month,
// including the December rollover.
func resolvePeriod(periodType string, ref time.Time) (time.Time, time.Time, error) {
	day := dateOnly(ref)
	switch periodType {
	case types.PeriodDaily:
		return day, day, nil
	case types.PeriodWeekly:
		offset := (int(day.Weekday()) + 6) % 7
		start := day.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 6), nil
	case types.PeriodMonthly:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0).AddDate(0, 0, -1)
		return start, end, nil
	default:
		return time.Time{}, time.Time{}, apierr.New(http.StatusBadRequest, "invalid_period_type", fmt.Errorf("invalid period type %q", periodType))
	}
}

// daysInPeriod counts the days in an inclusive [start, end] range.
func daysInPeriod(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(dateOnly(end).Sub(dateOnly(start)).Hours()/24) + 1
}

// endOfDay returns the last instant of the given calendar day, for
// comparisons against full timestamps.
func endOfDay(t time.Time) time.Time {
	return dateOnly(t).Add(24*time.Hour - time.Second)
}
