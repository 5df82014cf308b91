package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name    string
		hours   ClinicHours
		want    int
		first   string
		last    string
		wantErr bool
	}{
		{
			name:  "default clinic day",
			hours: ClinicHours{Open: "09:00", Close: "18:00", SlotMinutes: 30},
			want:  18, first: "09:00", last: "17:30",
		},
		{
			name:  "hourly slots",
			hours: ClinicHours{Open: "09:00", Close: "12:00", SlotMinutes: 60},
			want:  3, first: "09:00", last: "11:00",
		},
		{
			name:  "close not on boundary",
			hours: ClinicHours{Open: "09:00", Close: "10:45", SlotMinutes: 30},
			want:  4, first: "09:00", last: "10:30",
		},
		{
			name:    "open after close",
			hours:   ClinicHours{Open: "18:00", Close: "09:00", SlotMinutes: 30},
			wantErr: true,
		},
		{
			name:    "bad open time",
			hours:   ClinicHours{Open: "9am", Close: "18:00", SlotMinutes: 30},
			wantErr: true,
		},
		{
			name:    "zero step",
			hours:   ClinicHours{Open: "09:00", Close: "18:00", SlotMinutes: 0},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, err := GenerateSlots(tt.hours)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, slots, tt.want)
			assert.Equal(t, tt.first, slots[0])
			assert.Equal(t, tt.last, slots[len(slots)-1])
		})
	}
}

func TestFilterSlots(t *testing.T) {
	all := []string{"09:00", "09:30", "10:00", "10:30"}
	free := FilterSlots(all, []string{"09:30", "10:30"})
	assert.Equal(t, []string{"09:00", "10:00"}, free)

	assert.Equal(t, all, FilterSlots(all, nil))
	assert.Empty(t, FilterSlots(all, all))
}

func TestContainsSlot(t *testing.T) {
	all := []string{"09:00", "09:30"}
	assert.True(t, ContainsSlot(all, "09:30"))
	assert.False(t, ContainsSlot(all, "08:30"))
	assert.False(t, ContainsSlot(all, "09:15"))
}
