package service

import (
	"fmt"
	"time"
)

// ClinicHours bounds the bookable day. Slots start at Open inclusive and stop
// before Close, stepped by SlotMinutes.
type ClinicHours struct {
	Open        string
	Close       string
	SlotMinutes int
}

func DefaultClinicHours() ClinicHours {
	return ClinicHours{Open: "09:00", Close: "18:00", SlotMinutes: 30}
}

const slotLayout = "15:04"

// GenerateSlots expands the clinic hours into the ordered list of slot labels.
func GenerateSlots(hours ClinicHours) ([]string, error) {
	open, err := time.Parse(slotLayout, hours.Open)
	if err != nil {
		return nil, fmt.Errorf("invalid open time %q: %w", hours.Open, err)
	}
	close, err := time.Parse(slotLayout, hours.Close)
	if err != nil {
		return nil, fmt.Errorf("invalid close time %q: %w", hours.Close, err)
	}
	if hours.SlotMinutes <= 0 {
		return nil, fmt.Errorf("invalid slot duration %d", hours.SlotMinutes)
	}
	if !open.Before(close) {
		return nil, fmt.Errorf("open time %q is not before close time %q", hours.Open, hours.Close)
	}

	step := time.Duration(hours.SlotMinutes) * time.Minute
	var slots []string
	for t := open; t.Before(close); t = t.Add(step) {
		slots = append(slots, t.Format(slotLayout))
	}
	return slots, nil
}

// FilterSlots removes booked labels, preserving order.
func FilterSlots(all, booked []string) []string {
	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		taken[b] = true
	}
	free := make([]string, 0, len(all))
	for _, s := range all {
		if !taken[s] {
			free = append(free, s)
		}
	}
	return free
}

// ContainsSlot reports whether the label is a valid slot for the hours.
func ContainsSlot(all []string, slot string) bool {
	for _, s := range all {
		if s == slot {
			return true
		}
	}
	return false
}
