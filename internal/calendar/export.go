// Package calendar renders previewed occurrences as an iCalendar feed.
package calendar

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/example/recurrence-preview/internal/recurrence"
)

const (
	defaultProductID = "-//recurrence-preview//EN"
	defaultDomain    = "recurrence-preview"
	defaultDuration  = time.Hour
)

// ExportOptions tunes the generated feed. Zero values fall back to defaults.
type ExportOptions struct {
	ProductID string
	Domain    string
	// Duration of every event; one hour when zero or negative.
	Duration time.Duration
	// Now stamps DTSTAMP. The current time is used when zero.
	Now time.Time
	// Name sets X-WR-CALNAME when non-empty.
	Name string
}

func (o ExportOptions) withDefaults() ExportOptions {
	if o.ProductID == "" {
		o.ProductID = defaultProductID
	}
	if o.Domain == "" {
		o.Domain = defaultDomain
	}
	if o.Duration <= 0 {
		o.Duration = defaultDuration
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// Export builds a PUBLISH calendar with one VEVENT per output. Event UIDs are
// "<id>-<n>@<domain>" where n counts from 1 in output order.
func Export(id string, outputs []recurrence.Output, opts ExportOptions) string {
	opts = opts.withDefaults()

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(opts.ProductID)
	if opts.Name != "" {
		cal.SetXWRCalName(opts.Name)
	}

	stamp := opts.Now.UTC()
	for i, out := range outputs {
		event := cal.AddEvent(EventUID(id, i+1, opts.Domain))
		event.SetDtStampTime(stamp)
		event.SetStartAt(out.OutputDate)
		event.SetEndAt(out.OutputDate.Add(opts.Duration))
		event.SetSummary(out.Description)
	}
	return cal.Serialize()
}

// EventUID formats the UID of the n-th occurrence of configuration id.
func EventUID(id string, n int, domain string) string {
	return fmt.Sprintf("%s-%d@%s", id, n, domain)
}
