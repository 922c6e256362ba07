package services

import (
	"testing"
	"time"

	"github.com/yungbote/selfinvest-backend/internal/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolvePeriod(t *testing.T) {
	tests := []struct {
		name       string
		periodType string
		ref        time.Time
		wantStart  time.Time
		wantEnd    time.Time
	}{
		{
			name:       "daily",
			periodType: types.PeriodDaily,
			ref:        day(2024, time.May, 15),
			wantStart:  day(2024, time.May, 15),
			wantEnd:    day(2024, time.May, 15),
		},
		{
			name:       "weekly starts monday",
			periodType: types.PeriodWeekly,
			ref:        day(2024, time.May, 15), // a Wednesday
			wantStart:  day(2024, time.May, 13),
			wantEnd:    day(2024, time.May, 19),
		},
		{
			name:       "weekly on sunday stays in same iso week",
			periodType: types.PeriodWeekly,
			ref:        day(2024, time.May, 19),
			wantStart:  day(2024, time.May, 13),
			wantEnd:    day(2024, time.May, 19),
		},
		{
			name:       "monthly leap february",
			periodType: types.PeriodMonthly,
			ref:        day(2024, time.February, 15),
			wantStart:  day(2024, time.February, 1),
			wantEnd:    day(2024, time.February, 29),
		},
		{
			name:       "monthly non-leap february",
			periodType: types.PeriodMonthly,
			ref:        day(2023, time.February, 10),
			wantStart:  day(2023, time.February, 1),
			wantEnd:    day(2023, time.February, 28),
		},
		{
			name:       "monthly december rollover",
			periodType: types.PeriodMonthly,
			ref:        day(2023, time.December, 25),
			wantStart:  day(2023, time.December, 1),
			wantEnd:    day(2023, time.December, 31),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := resolvePeriod(tt.periodType, tt.ref)
			if err != nil {
				t.Fatalf("resolvePeriod() error = %v", err)
			}
			if !start.Equal(tt.wantStart) {
				t.Fatalf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Fatalf("end = %v, want %v", end, tt.wantEnd)
			}
			if end.Before(start) {
				t.Fatalf("end %v before start %v", end, start)
			}
		})
	}
}

func TestResolvePeriodInvalidType(t *testing.T) {
	if _, _, err := resolvePeriod("quarterly", day(2024, time.May, 15)); err == nil {
		t.Fatal("resolvePeriod() expected error for unknown period type")
	}
}

func TestDaysInPeriod(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"single day", day(2024, time.May, 1), day(2024, time.May, 1), 1},
		{"full week", day(2024, time.May, 13), day(2024, time.May, 19), 7},
		{"leap february", day(2024, time.February, 1), day(2024, time.February, 29), 29},
		{"inverted range", day(2024, time.May, 2), day(2024, time.May, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := daysInPeriod(tt.start, tt.end); got != tt.want {
				t.Fatalf("daysInPeriod() = %d, want %d", got, tt.want)
			}
		})
	}
}
