package calendar

import (
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/recurrence-preview/internal/recurrence"
)

func TestExport(t *testing.T) {
	t.Parallel()

	first := time.Date(2021, time.January, 4, 8, 0, 0, 0, time.UTC)
	outputs := []recurrence.Output{
		{OutputDate: first, Description: "Weekly standup"},
		{OutputDate: first.AddDate(0, 0, 7), Description: "Weekly standup"},
	}
	now := time.Date(2020, time.December, 31, 12, 0, 0, 0, time.UTC)

	body := Export("cfg-1", outputs, ExportOptions{Domain: "example.test", Duration: 30 * time.Minute, Now: now, Name: "Standups"})

	assert.Contains(t, body, "METHOD:PUBLISH")
	assert.Contains(t, body, "PRODID:"+defaultProductID)
	assert.Contains(t, body, "X-WR-CALNAME:Standups")

	cal, err := ical.ParseCalendar(strings.NewReader(body))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 2)

	for i, event := range events {
		uid := event.GetProperty(ical.ComponentPropertyUniqueId)
		require.NotNil(t, uid)
		assert.Equal(t, EventUID("cfg-1", i+1, "example.test"), uid.Value)

		summary := event.GetProperty(ical.ComponentPropertySummary)
		require.NotNil(t, summary)
		assert.Equal(t, "Weekly standup", summary.Value)

		start, err := event.GetStartAt()
		require.NoError(t, err)
		assert.True(t, start.Equal(outputs[i].OutputDate), "start %s", start)

		end, err := event.GetEndAt()
		require.NoError(t, err)
		assert.Equal(t, 30*time.Minute, end.Sub(start))

		stamp := event.GetProperty(ical.ComponentPropertyDtstamp)
		require.NotNil(t, stamp)
		assert.Equal(t, "20201231T120000Z", stamp.Value)
	}
}

func TestExport_Defaults(t *testing.T) {
	t.Parallel()

	at := time.Date(2021, time.March, 1, 9, 0, 0, 0, time.UTC)
	body := Export("abc", []recurrence.Output{{OutputDate: at, Description: "x"}}, ExportOptions{})

	cal, err := ical.ParseCalendar(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, cal.Events(), 1)

	event := cal.Events()[0]
	assert.Equal(t, "abc-1@"+defaultDomain, event.GetProperty(ical.ComponentPropertyUniqueId).Value)
	start, err := event.GetStartAt()
	require.NoError(t, err)
	end, err := event.GetEndAt()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, end.Sub(start))
}

func TestExport_Empty(t *testing.T) {
	t.Parallel()

	body := Export("none", nil, ExportOptions{Now: time.Unix(0, 0)})
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.NotContains(t, body, "BEGIN:VEVENT")
}
