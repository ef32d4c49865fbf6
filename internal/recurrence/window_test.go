package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExpandWindow(t *testing.T) {
	t.Parallel()

	dates := []time.Time{at(2021, time.January, 1, 0, 0), at(2021, time.January, 2, 0, 0)}

	cases := []struct {
		name     string
		from, to TimeOfDay
		step     int
		want     []time.Time
	}{
		{
			name: "single slot",
			from: NewTimeOfDay(9, 0), to: NewTimeOfDay(9, 0), step: 1,
			want: []time.Time{at(2021, time.January, 1, 9, 0), at(2021, time.January, 2, 9, 0)},
		},
		{
			name: "step divides the window",
			from: NewTimeOfDay(8, 0), to: NewTimeOfDay(12, 0), step: 2,
			want: []time.Time{
				at(2021, time.January, 1, 8, 0), at(2021, time.January, 1, 10, 0), at(2021, time.January, 1, 12, 0),
				at(2021, time.January, 2, 8, 0), at(2021, time.January, 2, 10, 0), at(2021, time.January, 2, 12, 0),
			},
		},
		{
			name: "upper bound is kept",
			from: NewTimeOfDay(8, 30), to: NewTimeOfDay(10, 0), step: 1,
			want: []time.Time{
				at(2021, time.January, 1, 8, 30), at(2021, time.January, 1, 9, 30), at(2021, time.January, 1, 10, 0),
				at(2021, time.January, 2, 8, 30), at(2021, time.January, 2, 9, 30), at(2021, time.January, 2, 10, 0),
			},
		},
		{
			name: "non-positive step collapses to the lower bound",
			from: NewTimeOfDay(8, 0), to: NewTimeOfDay(12, 0), step: 0,
			want: []time.Time{at(2021, time.January, 1, 8, 0), at(2021, time.January, 2, 8, 0)},
		},
		{
			name: "step wider than the window keeps both bounds",
			from: NewTimeOfDay(8, 0), to: NewTimeOfDay(12, 0), step: 5,
			want: []time.Time{
				at(2021, time.January, 1, 8, 0), at(2021, time.January, 1, 12, 0),
				at(2021, time.January, 2, 8, 0), at(2021, time.January, 2, 12, 0),
			},
		},
		{
			name: "huge step does not wrap around",
			from: NewTimeOfDay(8, 0), to: NewTimeOfDay(12, 0), step: 153722867280912931,
			want: []time.Time{
				at(2021, time.January, 1, 8, 0), at(2021, time.January, 1, 12, 0),
				at(2021, time.January, 2, 8, 0), at(2021, time.January, 2, 12, 0),
			},
		},
		{
			name: "inverted window",
			from: NewTimeOfDay(12, 0), to: NewTimeOfDay(8, 0), step: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, ExpandWindow(dates, tc.from, tc.to, tc.step))
		})
	}

	t.Run("no dates", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, ExpandWindow(nil, NewTimeOfDay(8, 0), NewTimeOfDay(9, 0), 1))
	})

	t.Run("keeps the date location", func(t *testing.T) {
		t.Parallel()

		madrid := time.FixedZone("CET", 3600)
		got := ExpandWindow([]time.Time{time.Date(2021, time.March, 3, 0, 0, 0, 0, madrid)}, NewTimeOfDay(7, 45), NewTimeOfDay(7, 45), 1)
		assert.Equal(t, []time.Time{time.Date(2021, time.March, 3, 7, 45, 0, 0, madrid)}, got)
	})
}

func TestResolveWindow(t *testing.T) {
	t.Parallel()

	t.Run("defaults to the time of the step date", func(t *testing.T) {
		t.Parallel()

		cfg := recurring(RecurringWeekly, at(2021, time.January, 1, 16, 20), at(2021, time.January, 8, 0, 0))
		w := resolveWindow(cfg)
		assert.Equal(t, NewTimeOfDay(16, 20), w.from)
		assert.True(t, w.single())
	})

	t.Run("once a day monthly ignores the upper bound", func(t *testing.T) {
		t.Parallel()

		cfg := validMonthlyOnce()
		cfg.HourTo = hm(18, 0)
		cfg.DailyFrequency = DailyFrequencyOnce
		assert.True(t, resolveWindow(cfg).single())

		cfg.DailyFrequency = DailyFrequencyEvery
		assert.Equal(t, NewTimeOfDay(18, 0), resolveWindow(cfg).to)
	})
}
