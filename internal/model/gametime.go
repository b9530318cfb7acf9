package model

import "fmt"

// minutesPerDay - длительность игровых суток в минутах.
const minutesPerDay = 24 * 60

// GameTime is simulated world time counted in game minutes since day 0, 00:00.
type GameTime int64

// NewGameTime builds a GameTime from day, hour and minute.
func NewGameTime(day, hour, minute int) GameTime {
	return GameTime(int64(day)*minutesPerDay + int64(hour)*60 + int64(minute))
}

// ClockTime builds a time-of-day value (day 0). Hour may be 24 to express end of day.
func ClockTime(hour, minute int) GameTime {
	return NewGameTime(0, hour, minute)
}

// FromHours converts fractional hours (e.g. 21.5) to a time-of-day value.
func FromHours(h float32) GameTime {
	hour := int(h)
	minute := int(h*60) % 60
	return ClockTime(hour, minute)
}

// Day returns the day index.
func (t GameTime) Day() int { return int(int64(t) / minutesPerDay) }

// Hour returns the hour of day (0..23).
func (t GameTime) Hour() int { return int(int64(t)%minutesPerDay) / 60 }

// Minute returns the minute of hour (0..59).
func (t GameTime) Minute() int { return int(int64(t) % 60) }

// TimeInDay strips the day component.
func (t GameTime) TimeInDay() GameTime {
	return GameTime(int64(t) % minutesPerDay)
}

func (t GameTime) String() string {
	return fmt.Sprintf("day %d %02d:%02d", t.Day(), t.Hour(), t.Minute())
}
