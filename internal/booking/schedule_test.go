package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickcourt/quickcourt-backend/internal/pkg/timeofday"
)

func mins(s string) timeofday.Minutes {
	m, err := timeofday.Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func TestBuildScheduleEmpty(t *testing.T) {
	slots := BuildSchedule(mins("09:00"), mins("21:00"), nil)

	require.Len(t, slots, 1)
	assert.True(t, slots[0].IsAvailable)
	assert.Equal(t, mins("09:00"), slots[0].StartMin)
	assert.Equal(t, mins("21:00"), slots[0].EndMin)
}

func TestBuildSchedulePartition(t *testing.T) {
	slots := BuildSchedule(mins("09:00"), mins("21:00"), []Occupied{
		{StartMin: mins("14:00"), EndMin: mins("15:30"), Reason: "maintenance"},
		{StartMin: mins("10:00"), EndMin: mins("12:00"), Reason: ReasonBooked},
	})

	require.Len(t, slots, 5)

	assert.Equal(t, Slot{StartMin: mins("09:00"), EndMin: mins("10:00"), IsAvailable: true}, slots[0])
	assert.Equal(t, Slot{StartMin: mins("10:00"), EndMin: mins("12:00"), Reason: ReasonBooked}, slots[1])
	assert.Equal(t, Slot{StartMin: mins("12:00"), EndMin: mins("14:00"), IsAvailable: true}, slots[2])
	assert.Equal(t, Slot{StartMin: mins("14:00"), EndMin: mins("15:30"), Reason: "maintenance"}, slots[3])
	assert.Equal(t, Slot{StartMin: mins("15:30"), EndMin: mins("21:00"), IsAvailable: true}, slots[4])

	// The slots cover the operating window exactly, in order, with no gaps.
	cursor := mins("09:00")
	for _, s := range slots {
		assert.Equal(t, cursor, s.StartMin)
		assert.Less(t, int(s.StartMin), int(s.EndMin))
		cursor = s.EndMin
	}
	assert.Equal(t, mins("21:00"), cursor)
}

func TestBuildScheduleFullyBooked(t *testing.T) {
	slots := BuildSchedule(mins("09:00"), mins("12:00"), []Occupied{
		{StartMin: mins("09:00"), EndMin: mins("12:00"), Reason: ReasonBooked},
	})

	require.Len(t, slots, 1)
	assert.False(t, slots[0].IsAvailable)
}

func TestBuildScheduleAdjacentIntervals(t *testing.T) {
	// Back-to-back intervals produce no phantom gap between them.
	slots := BuildSchedule(mins("08:00"), mins("12:00"), []Occupied{
		{StartMin: mins("09:00"), EndMin: mins("10:00"), Reason: ReasonBooked},
		{StartMin: mins("10:00"), EndMin: mins("11:00"), Reason: ReasonBooked},
	})

	require.Len(t, slots, 4)
	assert.True(t, slots[0].IsAvailable)
	assert.False(t, slots[1].IsAvailable)
	assert.False(t, slots[2].IsAvailable)
	assert.True(t, slots[3].IsAvailable)
}

func TestBuildScheduleClampsToWindow(t *testing.T) {
	slots := BuildSchedule(mins("09:00"), mins("21:00"), []Occupied{
		{StartMin: mins("08:00"), EndMin: mins("10:00"), Reason: ReasonBooked},
		{StartMin: mins("20:00"), EndMin: mins("22:00"), Reason: "maintenance"},
	})

	require.Len(t, slots, 3)
	assert.Equal(t, mins("09:00"), slots[0].StartMin)
	assert.Equal(t, mins("10:00"), slots[0].EndMin)
	assert.True(t, slots[1].IsAvailable)
	assert.Equal(t, mins("21:00"), slots[2].EndMin)
}
