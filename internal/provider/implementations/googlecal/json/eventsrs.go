package json

import "time"

type EventsRS struct {
	Items []EventItem `json:"items"`
}

type EventItem struct {
	Id      string    `json:"id"`
	Status  string    `json:"status"`
	Summary string    `json:"summary"`
	Start   EventTime `json:"start"`
	End     EventTime `json:"end"`
}

// EventTime carries either a dateTime for timed events or a date for
// all-day events.
type EventTime struct {
	DateTime string `json:"dateTime,omitempty"`
	Date     string `json:"date,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

func (t EventTime) Time() (time.Time, bool) {
	if t.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, t.DateTime)
		return parsed, err == nil
	}

	if t.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", t.Date, time.Local)
		return parsed, err == nil
	}

	return time.Time{}, false
}
