package businesshours

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chatterloop/widget/internal/domain/models"
)

func weekdaySchedule() map[string]models.DaySchedule {
	sched := make(map[string]models.DaySchedule)
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		sched[day] = models.DaySchedule{Open: "09:00", Close: "17:00"}
	}
	sched["saturday"] = models.DaySchedule{Closed: true}
	sched["sunday"] = models.DaySchedule{Closed: true}
	return sched
}

// 2026-08-26 is a Wednesday.
func wednesdayAt(hour, minute int) time.Time {
	return time.Date(2026, 8, 26, hour, minute, 0, 0, time.UTC)
}

func TestIsOpen_DisabledOrMissingConfig(t *testing.T) {
	now := wednesdayAt(3, 0)

	assert.True(t, IsOpen(nil, now))
	assert.True(t, IsOpen(&models.BusinessHours{Enabled: false, Timezone: "UTC", Schedule: weekdaySchedule()}, now))
	assert.True(t, IsOpen(&models.BusinessHours{Enabled: true, Timezone: "UTC"}, now))
}

func TestIsOpen_WithinWindow(t *testing.T) {
	bh := &models.BusinessHours{Enabled: true, Timezone: "UTC", Schedule: weekdaySchedule()}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"mid morning", wednesdayAt(10, 30), true},
		{"opening minute inclusive", wednesdayAt(9, 0), true},
		{"closing minute inclusive", wednesdayAt(17, 0), true},
		{"before opening", wednesdayAt(8, 59), false},
		{"after closing", wednesdayAt(17, 1), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsOpen(bh, tc.now))
		})
	}
}

func TestIsOpen_ClosedDay(t *testing.T) {
	bh := &models.BusinessHours{Enabled: true, Timezone: "UTC", Schedule: weekdaySchedule()}

	saturday := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	assert.False(t, IsOpen(bh, saturday))
}

func TestIsOpen_TimezoneShiftsWeekday(t *testing.T) {
	bh := &models.BusinessHours{Enabled: true, Timezone: "America/Los_Angeles", Schedule: weekdaySchedule()}

	// 01:00 UTC Saturday is still 18:00 Friday in Los Angeles, one hour
	// past closing but on an open day.
	fridayEveningPacific := time.Date(2026, 8, 29, 1, 0, 0, 0, time.UTC)
	assert.False(t, IsOpen(bh, fridayEveningPacific))

	// 16:30 Friday in Los Angeles is inside the window.
	fridayAfternoonPacific := time.Date(2026, 8, 28, 23, 30, 0, 0, time.UTC)
	assert.True(t, IsOpen(bh, fridayAfternoonPacific))
}

func TestIsOpen_BadTimezoneFailsOpen(t *testing.T) {
	bh := &models.BusinessHours{Enabled: true, Timezone: "Mars/Olympus_Mons", Schedule: weekdaySchedule()}
	assert.True(t, IsOpen(bh, wednesdayAt(3, 0)))
}

func TestIsOpen_Pure(t *testing.T) {
	bh := &models.BusinessHours{Enabled: true, Timezone: "UTC", Schedule: weekdaySchedule()}
	now := wednesdayAt(10, 0)

	first := IsOpen(bh, now)
	second := IsOpen(bh, now)
	assert.Equal(t, first, second)
}
