package entry

import (
	"time"
)

// CreatedLayout renders the human readable creation stamp.
const CreatedLayout = "1/2/2006, 3:04:05 PM"

func FormatCreated(t time.Time) string {
	return t.Local().Format(CreatedLayout)
}

// NextID returns the id for an entry created at now: its Unix millisecond
// timestamp, bumped past last so ids keep increasing.
func NextID(now time.Time, last int64) int64 {
	id := now.UnixMilli()
	if id <= last {
		id = last + 1
	}
	return id
}

// MaxID returns the largest id in entries, or 0.
func MaxID(entries []Entry) int64 {
	var max int64
	for _, e := range entries {
		if e.ID > max {
			max = e.ID
		}
	}
	return max
}
