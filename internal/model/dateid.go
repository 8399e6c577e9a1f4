package model

import (
	"fmt"
	"time"
)

// DateID encodes a calendar date as an 8-digit YYYYMMDD integer, the
// surrogate key joining fact rows to dim_date.
func DateID(t time.Time) int64 {
	return int64(t.Year())*10000 + int64(t.Month())*100 + int64(t.Day())
}

// DateFromID decodes a YYYYMMDD integer back into a calendar date.
func DateFromID(id int64) (time.Time, error) {
	year := int(id / 10000)
	month := int(id / 100 % 100)
	day := int(id % 100)
	if year < 1000 || year > 9999 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid date_id %d", id)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Reject ids like 20170230 that time.Date would normalize away.
	if DateID(t) != id {
		return time.Time{}, fmt.Errorf("invalid date_id %d", id)
	}
	return t, nil
}
