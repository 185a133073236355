package main

import (
	"testing"
	"time"

	"github.com/testersconnect/site/internal/events"
)

func TestSeeders_Registered(t *testing.T) {
	got := listSeeders()
	if len(got) != len(order) {
		t.Fatalf("registered %d seeders, want %d", len(got), len(order))
	}
	for i, s := range got {
		if s.Name() != order[i] {
			t.Errorf("seeder %d = %s, want %s", i, s.Name(), order[i])
		}
	}
}

func TestSeedData_Embedded(t *testing.T) {
	evs, err := loadSeedData[EventSeedData]("", "events")
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(evs.Events) == 0 {
		t.Error("no events embedded")
	}

	res, err := loadSeedData[ResourceSeedData]("", "resources")
	if err != nil {
		t.Fatalf("resources: %v", err)
	}
	for _, r := range res.Resources {
		if !r.Type.Valid() {
			t.Errorf("resource %s has type %q", r.Slug, r.Type)
		}
	}
}

func TestEventSeed_RelativeDate(t *testing.T) {
	today := events.Today(time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC), time.UTC)
	offset := -21

	past := EventSeed{DaysFromToday: &offset}
	got, err := past.date(today)
	if err != nil {
		t.Fatalf("date: %v", err)
	}
	if got.String() != "2026-02-22" {
		t.Errorf("date = %s, want 2026-02-22", got)
	}

	fixed := EventSeed{CreateCommand: events.CreateCommand{EventDate: "2026-07-01"}}
	got, err = fixed.date(today)
	if err != nil || got.String() != "2026-07-01" {
		t.Errorf("fixed date = %s, %v", got, err)
	}
}
