package export

import "time"

// GroupByDay partitions a sorted event sequence into contiguous runs sharing
// a local calendar date. Order is preserved; no event is dropped or copied
// across a boundary.
func GroupByDay(events []ChatEvent) []DayGroup {
	var groups []DayGroup
	for _, ev := range events {
		date := dayOf(ev.Timestamp)
		if len(groups) == 0 || !groups[len(groups)-1].Date.Equal(date) {
			groups = append(groups, DayGroup{Date: date})
		}
		last := &groups[len(groups)-1]
		last.Events = append(last.Events, ev)
	}
	return groups
}

func dayOf(t time.Time) time.Time {
	local := t.Local()
	y, m, d := local.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
