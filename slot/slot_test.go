package slot_test

import (
	"encoding/json"
	"salon-booking/hours"
	"salon-booking/slot"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-03 was a Wednesday.
var wednesday = time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)

func TestSlot(t *testing.T) {
	t.Run("parse", func(t *testing.T) {
		s, err := slot.Parse("09:05")
		require.NoError(t, err)
		assert.Equal(t, slot.Slot{Hour: 9, Minute: 5}, s)
		assert.Equal(t, 545, s.Minutes())
		assert.Equal(t, "09:05", s.String())
	})

	t.Run("parse invalid", func(t *testing.T) {
		for _, raw := range []string{"", "9", "25:00", "12:61", "noon"} {
			_, err := slot.Parse(raw)
			require.ErrorIs(t, err, slot.ErrInvalidTime, raw)
		}
	})

	t.Run("on date", func(t *testing.T) {
		loc := time.FixedZone("salon", 2*60*60)
		date := time.Date(2024, time.March, 9, 0, 0, 0, 0, loc)
		got := slot.Slot{Hour: 17, Minute: 30}.On(date)
		assert.Equal(t, time.Date(2024, time.March, 9, 17, 30, 0, 0, loc), got)
	})

	t.Run("json", func(t *testing.T) {
		b, err := json.Marshal([]slot.Slot{{Hour: 17}, {Hour: 18, Minute: 30}})
		require.NoError(t, err)
		assert.JSONEq(t, `["17:00","18:30"]`, string(b))

		var s slot.Slot
		require.NoError(t, json.Unmarshal([]byte(`"10:40"`), &s))
		assert.Equal(t, slot.Slot{Hour: 10, Minute: 40}, s)
		require.Error(t, json.Unmarshal([]byte(`"10h40"`), &s))
	})

	t.Run("scan", func(t *testing.T) {
		var s slot.Slot
		require.NoError(t, s.Scan("17:30:00"))
		assert.Equal(t, slot.Slot{Hour: 17, Minute: 30}, s)
		require.NoError(t, s.Scan([]byte("08:10")))
		assert.Equal(t, slot.Slot{Hour: 8, Minute: 10}, s)
		require.Error(t, s.Scan(42))

		v, err := slot.Slot{Hour: 8, Minute: 10}.Value()
		require.NoError(t, err)
		assert.Equal(t, "08:10", v)
	})
}

func TestGenerateGrid(t *testing.T) {
	t.Run("public increment", func(t *testing.T) {
		grid := slot.GenerateGrid(hours.Default, wednesday, slot.PublicIncrement)
		assert.Equal(t, []slot.Slot{
			{Hour: 17, Minute: 0},
			{Hour: 17, Minute: 30},
			{Hour: 18, Minute: 0},
			{Hour: 18, Minute: 30},
			{Hour: 19, Minute: 0},
		}, grid)
	})

	t.Run("admin increment", func(t *testing.T) {
		grid := slot.GenerateGrid(hours.Default, wednesday, slot.AdminIncrement)
		require.Len(t, grid, 13)
		assert.Equal(t, slot.Slot{Hour: 17, Minute: 10}, grid[1])
		assert.Equal(t, slot.Slot{Hour: 19, Minute: 0}, grid[12])
	})

	t.Run("increment not dividing the window", func(t *testing.T) {
		grid := slot.GenerateGrid(hours.Default, wednesday, 45)
		assert.Equal(t, []slot.Slot{{Hour: 17}, {Hour: 17, Minute: 45}, {Hour: 18, Minute: 30}}, grid)
	})

	t.Run("closed day", func(t *testing.T) {
		sunday := wednesday.AddDate(0, 0, 4)
		grid := slot.GenerateGrid(hours.Default, sunday, slot.PublicIncrement)
		require.NotNil(t, grid)
		assert.Empty(t, grid)
	})

	t.Run("non positive increment", func(t *testing.T) {
		assert.Empty(t, slot.GenerateGrid(hours.Default, wednesday, 0))
		assert.Empty(t, slot.GenerateGrid(hours.Default, wednesday, -30))
	})

	t.Run("ascending without duplicates", func(t *testing.T) {
		saturday := wednesday.AddDate(0, 0, 3)
		grid := slot.GenerateGrid(hours.Default, saturday, 20)
		for i := 1; i < len(grid); i++ {
			assert.Less(t, grid[i-1].Minutes(), grid[i].Minutes())
		}
	})

	t.Run("restartable", func(t *testing.T) {
		first := slot.GenerateGrid(hours.Default, wednesday, slot.PublicIncrement)
		first[0] = slot.Slot{Hour: 1}
		second := slot.GenerateGrid(hours.Default, wednesday, slot.PublicIncrement)
		assert.Equal(t, slot.Slot{Hour: 17}, second[0])
	})
}
