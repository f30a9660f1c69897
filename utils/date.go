package utils

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateOnly stores a calendar day, no time-of-day component.
type DateOnly struct {
	time.Time
}

func NewDateOnly(t time.Time) DateOnly {
	return DateOnly{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// === JSON: accepts and emits "YYYY-MM-DD" ===
func (d *DateOnly) UnmarshalJSON(data []byte) error {
	if string(data) == `null` {
		*d = DateOnly{time.Time{}}
		return nil
	}

	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	t, err := time.Parse("2006-01-02", str)
	if err != nil {
		return fmt.Errorf("invalid date format: %s", str)
	}
	*d = DateOnly{t}
	return nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// === DB: write and read as DATE ===
func (d DateOnly) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil // NULL
	}
	return d.Time.Format("2006-01-02"), nil
}

func (d *DateOnly) Scan(value interface{}) error {
	if value == nil {
		*d = DateOnly{time.Time{}}
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		*d = DateOnly{v}
		return nil
	case string:
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return fmt.Errorf("cannot parse date string: %v", err)
		}
		*d = DateOnly{t}
		return nil
	case []byte:
		t, err := time.Parse("2006-01-02", string(v))
		if err != nil {
			return fmt.Errorf("cannot parse date bytes: %v", err)
		}
		*d = DateOnly{t}
		return nil
	default:
		return fmt.Errorf("unsupported scan type for DateOnly: %T", value)
	}
}

// === Helpers ===
func (d DateOnly) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// DaysBetween counts whole days from a to b (nights of a stay).
func DaysBetween(a, b DateOnly) int {
	return int(b.Time.Sub(a.Time).Hours() / 24)
}

// Today returns the current day truncated to midnight UTC.
func Today() DateOnly {
	return NewDateOnly(time.Now())
}
