package scheduling_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/holycityautospa/booking-hub/internal/scheduling"
	"github.com/holycityautospa/booking-hub/internal/schema"
)

type fakeChecker struct {
	calls int
	busy  []schema.TimeWindow
	err   error
}

func (f *fakeChecker) IsFree(ctx context.Context, window schema.TimeWindow, logger *zerolog.Logger) (bool, error) {
	f.calls++

	if f.err != nil {
		return false, f.err
	}

	for _, busy := range f.busy {
		if busy.Overlaps(window) {
			return false, nil
		}
	}

	return true, nil
}

func localDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

func TestEnumerate(t *testing.T) {
	out := &bytes.Buffer{}
	log := zerolog.New(out)

	t.Run("should offer every whole-hour start on an empty day", func(t *testing.T) {
		checker := &fakeChecker{}

		// 2024-06-04 is a Tuesday
		slots, err := scheduling.Enumerate(context.Background(), localDate(2024, time.June, 4), 2, checker, &log)

		assert.Nil(t, err)
		assert.Len(t, slots, 9)

		for i, slot := range slots {
			assert.Equal(t, 8+i, slot.Start.Hour())
			assert.Equal(t, slot.Start.Add(2*time.Hour), slot.End)
		}

		// last slot must still end inside business hours
		assert.Equal(t, 18, slots[len(slots)-1].End.Hour())
	})

	t.Run("should return no slots on closed days without consulting the calendar", func(t *testing.T) {
		for _, date := range []time.Time{
			localDate(2024, time.June, 2), // Sunday
			localDate(2024, time.June, 3), // Monday
		} {
			checker := &fakeChecker{}

			slots, err := scheduling.Enumerate(context.Background(), date, 2, checker, &log)

			assert.Nil(t, err)
			assert.Empty(t, slots)
			assert.Equal(t, 0, checker.calls)
		}
	})

	t.Run("should return no slots when the duration exceeds the business day", func(t *testing.T) {
		checker := &fakeChecker{}

		slots, err := scheduling.Enumerate(context.Background(), localDate(2024, time.June, 4), 12, checker, &log)

		assert.Nil(t, err)
		assert.Empty(t, slots)
		assert.Equal(t, 0, checker.calls)
	})

	t.Run("should cut off starts whose slot would run past closing", func(t *testing.T) {
		checker := &fakeChecker{}

		slots, err := scheduling.Enumerate(context.Background(), localDate(2024, time.June, 4), 5.5, checker, &log)

		assert.Nil(t, err)
		assert.Len(t, slots, 5)
		assert.Equal(t, 12, slots[len(slots)-1].Start.Hour())
	})

	t.Run("should skip starts overlapping busy calendar windows", func(t *testing.T) {
		day := localDate(2024, time.June, 4)
		checker := &fakeChecker{
			busy: []schema.TimeWindow{
				{
					Start: time.Date(2024, time.June, 4, 10, 0, 0, 0, time.Local),
					End:   time.Date(2024, time.June, 4, 12, 0, 0, 0, time.Local),
				},
			},
		}

		slots, err := scheduling.Enumerate(context.Background(), day, 2, checker, &log)

		assert.Nil(t, err)

		for _, slot := range slots {
			assert.NotContains(t, []int{9, 10, 11}, slot.Start.Hour())
		}

		// starts 8 and 12..16 survive
		assert.Len(t, slots, 6)
	})

	t.Run("should abort on checker errors instead of guessing", func(t *testing.T) {
		checker := &fakeChecker{err: schema.NewError(schema.ProviderQueryError, "calendar unreachable", nil)}

		slots, err := scheduling.Enumerate(context.Background(), localDate(2024, time.June, 4), 2, checker, &log)

		assert.NotNil(t, err)
		assert.Nil(t, slots)
		assert.Equal(t, schema.ProviderQueryError, schema.KindOf(err))
		assert.Equal(t, 1, checker.calls)
	})

	t.Run("should produce ascending non-overlapping ends per start order", func(t *testing.T) {
		checker := &fakeChecker{}

		slots, err := scheduling.Enumerate(context.Background(), localDate(2024, time.June, 4), 1, checker, &log)

		assert.Nil(t, err)
		assert.Len(t, slots, 10)

		for i := 1; i < len(slots); i++ {
			assert.True(t, slots[i].Start.After(slots[i-1].Start))
		}
	})
}
