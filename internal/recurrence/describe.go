package recurrence

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/example/recurrence-preview/internal/localization"
)

// Formatter renders the one-sentence description of a configuration.
type Formatter struct {
	tr localization.Translator
}

// NewFormatter returns a Formatter using tr, or the static catalog when tr is nil.
func NewFormatter(tr localization.Translator) *Formatter {
	if tr == nil {
		tr = localization.Default()
	}
	return &Formatter{tr: tr}
}

// Describe renders cfg in cfg.Language. reference resolves the date of a
// once schedule whose DateStep has already passed. cfg must be valid.
func (f *Formatter) Describe(cfg *Configuration, reference time.Time) string {
	lang := cfg.Language
	if !cfg.Enabled {
		return f.text(localization.KeyDisabledSentence, lang)
	}

	start := f.date(*cfg.DateFrom, lang)
	if cfg.TimeType == TimeTypeOnce {
		at := resolveOnce(cfg, reference)
		return f.sentence(localization.KeyOnceSentence, lang, f.date(at, lang), f.clock(TimeOfDayOf(at), lang), start)
	}

	switch cfg.RecurringKind {
	case RecurringDaily:
		first := firstDaily(cfg)
		return f.sentence(localization.KeyDailySentence, lang,
			f.count(cfg.DailyStep, localization.KeyDay, localization.KeyDays, lang),
			f.date(first, lang), f.clock(TimeOfDayOf(first), lang), start)
	case RecurringWeekly:
		return f.sentence(localization.KeyWeeklySentence, lang,
			f.count(cfg.WeekStep, localization.KeyWeek, localization.KeyWeeks, lang),
			f.weekdays(cfg.Weekdays, lang),
			f.hours(resolveWindow(cfg), lang), start)
	case RecurringMonthly:
		if cfg.MonthlyOnce {
			return f.sentence(localization.KeyMonthlyDaySentence, lang,
				strconv.Itoa(cfg.MonthlyOnceDay),
				f.count(cfg.MonthlyOnceMonthSteps, localization.KeyMonth, localization.KeyMonths, lang),
				f.hours(resolveWindow(cfg), lang), start)
		}
		return f.sentence(localization.KeyMonthlyOrdinalSentence, lang,
			f.text(ordinalKeys[cfg.WeekOrdinal], lang),
			f.text(categoryKeys[cfg.DayCategory], lang),
			f.count(cfg.MonthlyMoreMonthSteps, localization.KeyMonth, localization.KeyMonths, lang),
			f.hours(resolveWindow(cfg), lang), start)
	}
	return ""
}

var ordinalKeys = map[WeekOrdinal]localization.Key{
	OrdinalFirst:  localization.KeyFirst,
	OrdinalSecond: localization.KeySecond,
	OrdinalThird:  localization.KeyThird,
	OrdinalFourth: localization.KeyFourth,
	OrdinalLast:   localization.KeyLast,
}

var categoryKeys = map[DayCategory]localization.Key{
	DayCategoryMonday:     localization.KeyMonday,
	DayCategoryTuesday:    localization.KeyTuesday,
	DayCategoryWednesday:  localization.KeyWednesday,
	DayCategoryThursday:   localization.KeyThursday,
	DayCategoryFriday:     localization.KeyFriday,
	DayCategorySaturday:   localization.KeySaturday,
	DayCategorySunday:     localization.KeySunday,
	DayCategoryAnyDay:     localization.KeyAnyDay,
	DayCategoryWeekDay:    localization.KeyWeekDay,
	DayCategoryWeekendDay: localization.KeyWeekendDay,
}

var weekdayKeys = map[time.Weekday]localization.Key{
	time.Monday:    localization.KeyMonday,
	time.Tuesday:   localization.KeyTuesday,
	time.Wednesday: localization.KeyWednesday,
	time.Thursday:  localization.KeyThursday,
	time.Friday:    localization.KeyFriday,
	time.Saturday:  localization.KeySaturday,
	time.Sunday:    localization.KeySunday,
}

func (f *Formatter) text(key localization.Key, lang localization.Language) string {
	return f.tr.Translate(key, lang)
}

func (f *Formatter) sentence(key localization.Key, lang localization.Language, args ...any) string {
	return fmt.Sprintf(f.text(key, lang), args...)
}

// count renders the singular term for exactly one and "<n> <plural>" otherwise.
func (f *Formatter) count(n int, singular, plural localization.Key, lang localization.Language) string {
	if n == 1 {
		return f.text(singular, lang)
	}
	return strconv.Itoa(n) + " " + f.text(plural, lang)
}

func (f *Formatter) date(t time.Time, lang localization.Language) string {
	return t.Format(f.text(localization.KeyDateLayout, lang))
}

func (f *Formatter) clock(t TimeOfDay, lang localization.Language) string {
	return time.Date(2000, time.January, 1, t.Hour, t.Minute, 0, 0, time.UTC).Format(f.text(localization.KeyTimeLayout, lang))
}

func (f *Formatter) hours(w hourWindow, lang localization.Language) string {
	if w.single() {
		return f.sentence(localization.KeySingleHourClause, lang, f.clock(w.from, lang))
	}
	return f.sentence(localization.KeyHourWindowClause, lang,
		f.count(w.step, localization.KeyHour, localization.KeyHours, lang),
		f.clock(w.from, lang), f.clock(w.to, lang))
}

// weekdays joins the selected day names with commas and a final localized "and".
func (f *Formatter) weekdays(days Weekdays, lang localization.Language) string {
	selected := days.Selected()
	names := make([]string, 0, len(selected))
	for _, day := range selected {
		names = append(names, f.text(weekdayKeys[day], lang))
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " " + f.text(localization.KeyAnd, lang) + " " + names[len(names)-1]
}
