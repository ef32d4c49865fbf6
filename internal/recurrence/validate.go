package recurrence

// Validate checks cfg and returns a *ScheduleError for the first violated
// rule. Disabled configurations are never inspected beyond the nil check.
func Validate(cfg *Configuration) error {
	if cfg == nil {
		return newScheduleError(KindMissingConfiguration)
	}
	if !cfg.Enabled {
		return nil
	}
	if cfg.DateFrom == nil || cfg.DateStep == nil {
		return newScheduleError(KindMissingDateConfiguration)
	}

	switch cfg.TimeType {
	case TimeTypeOnce:
		return nil
	case TimeTypeRecurring:
	default:
		return newScheduleError(KindMissingRecurringFrequency)
	}

	if cfg.RecurringKind == RecurringUnspecified {
		return newScheduleError(KindMissingRecurringFrequency)
	}
	// Every recurring algorithm is bounded by DateTo.
	if cfg.DateTo == nil {
		return newScheduleError(KindMissingDateConfiguration)
	}

	switch cfg.RecurringKind {
	case RecurringDaily:
		return validateDaily(cfg)
	case RecurringWeekly:
		return validateWeekly(cfg)
	case RecurringMonthly:
		return validateMonthly(cfg)
	default:
		return newScheduleError(KindMissingRecurringFrequency)
	}
}

func validateDaily(cfg *Configuration) error {
	if cfg.DailyStep <= 0 {
		return newScheduleError(KindInvalidDailyStep)
	}
	return nil
}

func validateWeekly(cfg *Configuration) error {
	if cfg.WeekStep <= 0 {
		return newScheduleError(KindInvalidWeeklyStep)
	}
	if !cfg.Weekdays.Any() {
		return newScheduleError(KindMissingDaySelection)
	}
	if cfg.HourFrom == nil && cfg.HourTo == nil {
		return nil
	}
	if cfg.HourStep <= 0 {
		return newScheduleError(KindInvalidHourStep)
	}
	return validateWindow(cfg)
}

func validateMonthly(cfg *Configuration) error {
	switch {
	case cfg.MonthlyOnce:
		return validateMonthlyOnce(cfg)
	case cfg.MonthlyMore:
		return validateMonthlyMore(cfg)
	default:
		return newScheduleError(KindMissingMonthlyConfiguration)
	}
}

func validateMonthlyOnce(cfg *Configuration) error {
	if cfg.MonthlyOnceDay <= 0 || cfg.MonthlyOnceDay > 31 {
		return newScheduleError(KindInvalidMonthlyOnceDay)
	}
	if cfg.MonthlyOnceMonthSteps <= 0 {
		return newScheduleError(KindInvalidMonthlyMonths)
	}
	if cfg.HourStep <= 0 {
		return newScheduleError(KindMissingDailyHourStep)
	}
	return validateWindow(cfg)
}

func validateMonthlyMore(cfg *Configuration) error {
	if cfg.MonthlyMoreMonthSteps <= 0 {
		return newScheduleError(KindInvalidMonthlyMonths)
	}
	if !cfg.DayCategory.valid() || !cfg.WeekOrdinal.valid() {
		return newScheduleError(KindMissingMonthlyDayFrequency)
	}
	if cfg.HourFrom == nil || cfg.HourTo == nil {
		return newScheduleError(KindMissingMonthlyHourWindow)
	}
	if cfg.HourStep <= 0 {
		return newScheduleError(KindInvalidHourStep)
	}
	return validateWindow(cfg)
}

// maxHourStep is the largest step that still lands inside a single day.
const maxHourStep = 24

// validateWindow checks the configured bounds and then the window the
// generator will actually use, where a missing HourFrom falls back to the
// time of DateStep.
func validateWindow(cfg *Configuration) error {
	for _, bound := range []*TimeOfDay{cfg.HourFrom, cfg.HourTo} {
		if bound != nil && !bound.Valid() {
			return newScheduleError(KindInvalidTimeOfDay)
		}
	}
	if cfg.HourStep > maxHourStep {
		return newScheduleError(KindInvalidHourStep)
	}
	if cfg.HourFrom != nil && cfg.HourTo != nil && cfg.HourFrom.After(*cfg.HourTo) {
		return newScheduleError(KindHourFromAfterHourTo)
	}
	if w := resolveWindow(cfg); w.from.After(w.to) {
		return newScheduleError(KindHourFromAfterHourTo)
	}
	return nil
}
