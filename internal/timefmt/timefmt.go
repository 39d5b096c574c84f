// Package timefmt holds pure clock and date formatting helpers. Labels are
// rendered in Spanish to match the backend's audience.
package timefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var weekdaysLong = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

var weekdaysShort = [...]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"}

var monthsLong = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}

var monthsShort = [...]string{"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic"}

// Elapsed formats the time spent since start as HH:MM:SS. Sessions longer
// than a day keep counting hours instead of rolling over.
func Elapsed(start, now time.Time) string {
	d := now.Sub(start)
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// ClockTime renders a wall-clock label with seconds.
func ClockTime(t time.Time) string {
	return t.Format("15:04:05")
}

// ShortClock renders a wall-clock label without seconds.
func ShortClock(t time.Time) string {
	return t.Format("15:04")
}

// LongDate renders a full Spanish date, e.g. "lunes, 2 de enero de 2006".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d",
		weekdaysLong[t.Weekday()], t.Day(), monthsLong[t.Month()-1], t.Year())
}

// RelativeDate labels t relative to now: "Hoy 15:04" for today,
// "Mañana 15:04" for tomorrow, otherwise a short absolute form like
// "lun 2 ene 15:04".
func RelativeDate(t, now time.Time) string {
	clock := ShortClock(t)
	if sameDay(t, now) {
		return "Hoy " + clock
	}
	if sameDay(t, now.AddDate(0, 0, 1)) {
		return "Mañana " + clock
	}
	return fmt.Sprintf("%s %d %s %s",
		weekdaysShort[t.Weekday()], t.Day(), monthsShort[t.Month()-1], clock)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Minutes converts a zero-padded "HH:MM" string to minutes past midnight.
func Minutes(hhmm string) (int, error) {
	parts := strings.Split(hhmm, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", hhmm)
	}
	return h*60 + m, nil
}

// DurationLabel renders the span between two same-day HH:MM strings as
// "2h 30m", "2h" or "45m". Invalid input yields an empty label.
func DurationLabel(start, end string) string {
	from, err := Minutes(start)
	if err != nil {
		return ""
	}
	to, err := Minutes(end)
	if err != nil {
		return ""
	}
	diff := to - from
	h, m := diff/60, diff%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
