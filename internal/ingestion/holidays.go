package ingestion

import "time"

// LastNBusinessDays returns the last n Swedish business days (most recent first).
// It excludes Saturdays, Sundays, and Swedish fixed/movable public holidays.
func LastNBusinessDays(n int, from time.Time) []time.Time {
	out := make([]time.Time, 0, n)
	d := truncateToDate(from)

	for len(out) < n {
		if isBusinessDaySE(d) {
			out = append(out, d)
		}
		d = d.AddDate(0, 0, -1)
	}
	return out
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// isBusinessDaySE returns true if date is a business day in Sweden.
func isBusinessDaySE(d time.Time) bool {
	// Weekend
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}

	// Fixed holidays and the eves the exchange closes on
	fixed := map[string]struct{}{
		"01-01": {}, // New Year's Day
		"01-06": {}, // Epiphany
		"05-01": {}, // May Day
		"06-06": {}, // National Day
		"12-24": {}, // Christmas Eve
		"12-25": {}, // Christmas Day
		"12-26": {}, // Boxing Day
		"12-31": {}, // New Year's Eve
	}
	key := d.Format("01-02")
	if _, ok := fixed[key]; ok {
		return false
	}

	y := d.Year()
	day := truncateToDate(d)

	// Midsummer Eve is the Friday between 19 and 25 June
	if d.Month() == time.June && d.Weekday() == time.Friday && d.Day() >= 19 && d.Day() <= 25 {
		return false
	}

	// Movable holidays (computed from Easter)
	easter := easterSunday(y, d.Location())
	movables := []time.Time{
		easter.AddDate(0, 0, -2), // Good Friday
		easter.AddDate(0, 0, 1),  // Easter Monday
		easter.AddDate(0, 0, 39), // Ascension Day
	}
	for _, h := range movables {
		if h.Equal(day) {
			return false
		}
	}

	return true
}

// easterSunday returns the date of Easter Sunday for a given year
// (Meeus/Jones/Butcher algorithm).
func easterSunday(year int, loc *time.Location) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}
