package models

import "fmt"

// Duration is an hours/minutes pair as entered by the user. The zero value
// means no time at all.
type Duration struct {
	Hours   int
	Minutes int
}

// TotalMinutes converts the duration to a single minute count.
func (d Duration) TotalMinutes() int {
	return d.Hours*60 + d.Minutes
}

// Normalize carries overflowing minutes into hours so Minutes < 60.
func (d Duration) Normalize() Duration {
	d.Hours += d.Minutes / 60
	d.Minutes %= 60
	return d
}

// Add returns the normalized sum of two durations.
func (d Duration) Add(o Duration) Duration {
	return Duration{Hours: d.Hours + o.Hours, Minutes: d.Minutes + o.Minutes}.Normalize()
}

// FromMinutes builds a normalized duration from a minute count. Negative
// counts clamp to zero.
func FromMinutes(minutes int) Duration {
	if minutes <= 0 {
		return Duration{}
	}
	return Duration{Hours: minutes / 60, Minutes: minutes % 60}
}

// IsZero reports whether the duration is zero time.
func (d Duration) IsZero() bool {
	return d.Hours == 0 && d.Minutes == 0
}

func (d Duration) String() string {
	return fmt.Sprintf("%dh %dm", d.Hours, d.Minutes)
}
