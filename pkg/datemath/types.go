package datemath

import "time"

// Range is a resolved date phrase. Single days have Start == End.
type Range struct {
	Start time.Time
	End   time.Time
}

// IsSingleDay reports whether the range covers exactly one calendar day.
func (r Range) IsSingleDay() bool {
	return r.Start.Equal(r.End)
}
