// Package grid maps wall-clock times onto the weekly schedule canvas.
package grid

import "github.com/00Flaptzy/academicflow/internal/timefmt"

// The visual grid starts at 07:00 and allocates 1.5 px per minute.
const (
	BaseHour    = 7
	PxPerMinute = 1.5
)

// VerticalOffset returns the pixel offset of a start time measured from the
// grid origin. Times before BaseHour produce negative offsets; clamping is
// the caller's concern.
func VerticalOffset(start string) (float64, error) {
	m, err := timefmt.Minutes(start)
	if err != nil {
		return 0, err
	}
	return float64(m-BaseHour*60) * PxPerMinute, nil
}

// Height returns the pixel height of a same-day block between start and end.
func Height(start, end string) (float64, error) {
	from, err := timefmt.Minutes(start)
	if err != nil {
		return 0, err
	}
	to, err := timefmt.Minutes(end)
	if err != nil {
		return 0, err
	}
	return float64(to-from) * PxPerMinute, nil
}
