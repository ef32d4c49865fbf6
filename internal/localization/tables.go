package localization

// table holds one translation per Key. Its length is fixed by keyCount so a
// language cannot carry stray entries.
type table [keyCount]string

var tables = [languageCount]table{
	EnglishGB: englishGB,
	EnglishUS: englishUS(),
	Spanish:   spanish,
}

var englishGB = table{
	KeyDateLayout: "02/01/2006",
	KeyTimeLayout: "15:04",

	KeyDay:    "day",
	KeyDays:   "days",
	KeyHour:   "hour",
	KeyHours:  "hours",
	KeyWeek:   "week",
	KeyWeeks:  "weeks",
	KeyMonth:  "month",
	KeyMonths: "months",

	KeyMonday:    "Monday",
	KeyTuesday:   "Tuesday",
	KeyWednesday: "Wednesday",
	KeyThursday:  "Thursday",
	KeyFriday:    "Friday",
	KeySaturday:  "Saturday",
	KeySunday:    "Sunday",

	KeyAnyDay:     "day",
	KeyWeekDay:    "weekday",
	KeyWeekendDay: "weekend day",

	KeyFirst:  "first",
	KeySecond: "second",
	KeyThird:  "third",
	KeyFourth: "fourth",
	KeyLast:   "last",

	KeyAnd: "and",

	KeyDisabledSentence:       "The schedule is disabled",
	KeyOnceSentence:           "Occurs once. Schedule will be used on %[1]s at %[2]s starting on %[3]s",
	KeyDailySentence:          "Occurs every %[1]s. Schedule will be used on %[2]s at %[3]s starting on %[4]s",
	KeyWeeklySentence:         "Occurs every %[1]s on %[2]s %[3]s starting on %[4]s",
	KeyMonthlyDaySentence:     "Occurs on day %[1]s of every %[2]s %[3]s starting on %[4]s",
	KeyMonthlyOrdinalSentence: "Occurs the %[1]s %[2]s of every %[3]s %[4]s starting on %[5]s",
	KeyHourWindowClause:       "every %[1]s between %[2]s and %[3]s",
	KeySingleHourClause:       "at %[1]s",

	KeyErrMissingConfiguration:        "A schedule configuration is required",
	KeyErrMissingDateConfiguration:    "The start date and the step date are required",
	KeyErrMissingRecurringFrequency:   "A recurring frequency must be selected",
	KeyErrInvalidDailyStep:            "The daily step must be greater than zero",
	KeyErrInvalidWeeklyStep:           "The weekly step must be greater than zero",
	KeyErrMissingDaySelection:         "At least one day of the week must be selected",
	KeyErrInvalidMonthlyOnceDay:       "The day of the month must be between 1 and 31",
	KeyErrInvalidMonthlyMonths:        "The month step must be greater than zero",
	KeyErrMissingDailyHourStep:        "The hour step must be greater than zero",
	KeyErrHourFromAfterHourTo:         "The start hour must not be after the end hour",
	KeyErrMissingMonthlyConfiguration: "A monthly configuration must be selected",
	KeyErrMissingMonthlyDayFrequency:  "The day of the monthly configuration must be selected",
	KeyErrMissingMonthlyHourWindow:    "The start and end hours are required",
	KeyErrInvalidHourStep:             "The hour step must be between 1 and 24",
	KeyErrInvalidTimeOfDay:            "Hours must be between 00:00 and 23:59",
}

// englishUS differs from englishGB only in its date and time layouts.
func englishUS() table {
	t := englishGB
	t[KeyDateLayout] = "01/02/2006"
	t[KeyTimeLayout] = "3:04 PM"
	return t
}

var spanish = table{
	KeyDateLayout: "02/01/2006",
	KeyTimeLayout: "15:04",

	KeyDay:    "día",
	KeyDays:   "días",
	KeyHour:   "hora",
	KeyHours:  "horas",
	KeyWeek:   "semana",
	KeyWeeks:  "semanas",
	KeyMonth:  "mes",
	KeyMonths: "meses",

	KeyMonday:    "lunes",
	KeyTuesday:   "martes",
	KeyWednesday: "miércoles",
	KeyThursday:  "jueves",
	KeyFriday:    "viernes",
	KeySaturday:  "sábado",
	KeySunday:    "domingo",

	KeyAnyDay:     "día",
	KeyWeekDay:    "día laborable",
	KeyWeekendDay: "día de fin de semana",

	KeyFirst:  "primer",
	KeySecond: "segundo",
	KeyThird:  "tercer",
	KeyFourth: "cuarto",
	KeyLast:   "último",

	KeyAnd: "y",

	KeyDisabledSentence:       "La programación está deshabilitada",
	KeyOnceSentence:           "Ocurre una vez. La programación se usará el %[1]s a las %[2]s a partir del %[3]s",
	KeyDailySentence:          "Ocurre cada %[1]s. La programación se usará el %[2]s a las %[3]s a partir del %[4]s",
	KeyWeeklySentence:         "Ocurre cada %[1]s el %[2]s %[3]s a partir del %[4]s",
	KeyMonthlyDaySentence:     "Ocurre el día %[1]s de cada %[2]s %[3]s a partir del %[4]s",
	KeyMonthlyOrdinalSentence: "Ocurre el %[1]s %[2]s de cada %[3]s %[4]s a partir del %[5]s",
	KeyHourWindowClause:       "cada %[1]s entre las %[2]s y las %[3]s",
	KeySingleHourClause:       "a las %[1]s",

	KeyErrMissingConfiguration:        "Se requiere una configuración de programación",
	KeyErrMissingDateConfiguration:    "La fecha de inicio y la fecha de paso son obligatorias",
	KeyErrMissingRecurringFrequency:   "Debe seleccionarse una frecuencia de repetición",
	KeyErrInvalidDailyStep:            "El paso diario debe ser mayor que cero",
	KeyErrInvalidWeeklyStep:           "El paso semanal debe ser mayor que cero",
	KeyErrMissingDaySelection:         "Debe seleccionarse al menos un día de la semana",
	KeyErrInvalidMonthlyOnceDay:       "El día del mes debe estar entre 1 y 31",
	KeyErrInvalidMonthlyMonths:        "El paso de meses debe ser mayor que cero",
	KeyErrMissingDailyHourStep:        "El paso de horas debe ser mayor que cero",
	KeyErrHourFromAfterHourTo:         "La hora de inicio no puede ser posterior a la hora de fin",
	KeyErrMissingMonthlyConfiguration: "Debe seleccionarse una configuración mensual",
	KeyErrMissingMonthlyDayFrequency:  "Debe seleccionarse el día de la configuración mensual",
	KeyErrMissingMonthlyHourWindow:    "Las horas de inicio y fin son obligatorias",
	KeyErrInvalidHourStep:             "El paso de horas debe estar entre 1 y 24",
	KeyErrInvalidTimeOfDay:            "Las horas deben estar entre 00:00 y 23:59",
}
