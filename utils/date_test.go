package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateOnlyJSONRoundTrip(t *testing.T) {
	var d DateOnly
	assert.NoError(t, json.Unmarshal([]byte(`"2026-09-10"`), &d))
	assert.Equal(t, "2026-09-10", d.String())

	out, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.Equal(t, `"2026-09-10"`, string(out))
}

func TestDateOnlyJSONNull(t *testing.T) {
	var d DateOnly
	assert.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	out, err := json.Marshal(d)
	assert.NoError(t, err)
	assert.Equal(t, `null`, string(out))
}

func TestDateOnlyJSONRejectsTimestamps(t *testing.T) {
	var d DateOnly
	assert.Error(t, json.Unmarshal([]byte(`"2026-09-10T14:00:00Z"`), &d))
}

func TestDateOnlyValueAndScan(t *testing.T) {
	d := NewDateOnly(time.Date(2026, 9, 10, 15, 4, 5, 0, time.UTC))

	v, err := d.Value()
	assert.NoError(t, err)
	assert.Equal(t, "2026-09-10", v, "time-of-day is dropped")

	var scanned DateOnly
	assert.NoError(t, scanned.Scan("2026-09-10"))
	assert.Equal(t, d.Time, scanned.Time)

	assert.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsZero())
}

func TestDaysBetween(t *testing.T) {
	a := NewDateOnly(time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC))
	b := NewDateOnly(time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 3, DaysBetween(a, b))
	assert.Equal(t, -3, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a))
}
