package export

import (
	"testing"
	"time"
)

func TestGroupByDayEmpty(t *testing.T) {
	if groups := GroupByDay(nil); len(groups) != 0 {
		t.Fatalf("got %d groups, want 0", len(groups))
	}
}

func TestGroupByDaySplitsOnDateChange(t *testing.T) {
	d1 := time.Date(2026, 2, 10, 23, 50, 0, 0, time.Local)
	d2 := time.Date(2026, 2, 11, 0, 5, 0, 0, time.Local)
	events := []ChatEvent{
		{RowID: 1, Timestamp: d1},
		{RowID: 2, Timestamp: d1.Add(5 * time.Minute)},
		{RowID: 3, Timestamp: d2},
	}
	groups := GroupByDay(events)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if len(groups[0].Events) != 2 || len(groups[1].Events) != 1 {
		t.Errorf("group sizes = %d/%d, want 2/1", len(groups[0].Events), len(groups[1].Events))
	}
	if !groups[1].Date.Equal(time.Date(2026, 2, 11, 0, 0, 0, 0, time.Local)) {
		t.Errorf("second group date = %v", groups[1].Date)
	}
}

func TestGroupByDayConcatenationPreservesSequence(t *testing.T) {
	var events []ChatEvent
	start := time.Date(2026, 2, 10, 12, 0, 0, 0, time.Local)
	for i := 0; i < 10; i++ {
		events = append(events, ChatEvent{
			RowID:     int64(i + 1),
			Timestamp: start.Add(time.Duration(i) * 7 * time.Hour),
		})
	}
	groups := GroupByDay(events)

	var flat []ChatEvent
	for _, g := range groups {
		flat = append(flat, g.Events...)
	}
	if len(flat) != len(events) {
		t.Fatalf("flattened %d events, want %d", len(flat), len(events))
	}
	for i := range events {
		if flat[i].RowID != events[i].RowID {
			t.Fatalf("event %d reordered: got row %d, want %d", i, flat[i].RowID, events[i].RowID)
		}
	}
}
