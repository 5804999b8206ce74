package phase

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

func threeStageWindow(start time.Time, price int64) Window {
	return Window{
		Stages: []Stage{
			{Start: start, Cap: 100},
			{Start: start.Add(time.Hour), Cap: 200},
			{Start: start.Add(2 * time.Hour), Cap: 300},
		},
		Price: big.NewInt(price),
	}
}

func ladder(t *testing.T) *Schedule {
	t.Helper()
	s := NewSchedule()
	require.NoError(t, s.SetWindow(TierEarlybird, threeStageWindow(base, 10)))
	require.NoError(t, s.SetWindow(TierPrivate, threeStageWindow(base.Add(3*time.Hour), 20)))
	require.NoError(t, s.SetWindow(TierCommunity, threeStageWindow(base.Add(6*time.Hour), 30)))
	return s
}

func TestSchedule_Resolve_NotStarted(t *testing.T) {
	s := ladder(t)
	_, ok := s.Resolve(base.Add(-time.Minute))
	assert.False(t, ok)
}

func TestSchedule_Resolve_StageProgression(t *testing.T) {
	s := ladder(t)

	active, ok := s.Resolve(base)
	require.True(t, ok)
	assert.Equal(t, TierEarlybird, active.Tier)
	assert.Equal(t, 0, active.Stage)
	assert.True(t, active.FastPass)
	assert.Equal(t, uint64(100), active.Cap)
	assert.Equal(t, big.NewInt(10), active.Price)

	active, ok = s.Resolve(base.Add(90 * time.Minute))
	require.True(t, ok)
	assert.Equal(t, 1, active.Stage)
	assert.False(t, active.FastPass)
	assert.Equal(t, uint64(200), active.Cap)

	active, ok = s.Resolve(base.Add(2*time.Hour + time.Minute))
	require.True(t, ok)
	assert.Equal(t, 2, active.Stage)
	assert.Equal(t, uint64(300), active.Cap)
	// price is per tier, not per stage
	assert.Equal(t, big.NewInt(10), active.Price)
}

func TestSchedule_Resolve_LaterTierOverrides(t *testing.T) {
	s := ladder(t)

	// once Private's fast-pass opens, Earlybird is over even though its
	// cap was never reached
	active, ok := s.Resolve(base.Add(3 * time.Hour))
	require.True(t, ok)
	assert.Equal(t, TierPrivate, active.Tier)
	assert.True(t, active.FastPass)
	assert.Equal(t, big.NewInt(20), active.Price)

	active, ok = s.Resolve(base.Add(24 * time.Hour))
	require.True(t, ok)
	assert.Equal(t, TierCommunity, active.Tier)
	assert.Equal(t, 2, active.Stage)
}

func TestSchedule_Resolve_Monotonic(t *testing.T) {
	s := ladder(t)

	rank := func(a Active) int { return int(a.Tier)*10 + a.Stage }
	last := -1
	for m := 0; m < 10*60; m += 7 {
		active, ok := s.Resolve(base.Add(time.Duration(m) * time.Minute))
		require.True(t, ok)
		assert.GreaterOrEqual(t, rank(active), last)
		last = rank(active)
	}
}

func TestSchedule_Resolve_SingleStageTier(t *testing.T) {
	s := NewSchedule()
	w := Window{Stages: []Stage{{Start: base, Cap: 500}}, Price: big.NewInt(5)}
	require.NoError(t, s.SetWindow(TierEarlybird, w))

	active, ok := s.Resolve(base.Add(time.Minute))
	require.True(t, ok)
	assert.False(t, active.FastPass)
	assert.Equal(t, uint64(500), active.Cap)
}

func TestSchedule_SetWindow_BadStartOrder(t *testing.T) {
	s := NewSchedule()
	w := Window{
		Stages: []Stage{
			{Start: base.Add(time.Hour), Cap: 100},
			{Start: base, Cap: 200},
		},
		Price: big.NewInt(1),
	}
	assert.ErrorIs(t, s.SetWindow(TierEarlybird, w), ErrBadStartTime)
}

func TestSchedule_SetWindow_DecreasingCap(t *testing.T) {
	s := NewSchedule()
	w := Window{
		Stages: []Stage{
			{Start: base, Cap: 200},
			{Start: base.Add(time.Hour), Cap: 100},
		},
		Price: big.NewInt(1),
	}
	assert.ErrorIs(t, s.SetWindow(TierEarlybird, w), ErrBadQuantity)
}

func TestSchedule_SetWindow_OutOfOrderTier(t *testing.T) {
	s := NewSchedule()
	require.NoError(t, s.SetWindow(TierEarlybird, threeStageWindow(base.Add(3*time.Hour), 10)))

	// Private opening before Earlybird's last stage start
	assert.ErrorIs(t, s.SetWindow(TierPrivate, threeStageWindow(base, 20)), ErrOutOfOrderTier)

	// fixing an earlier tier cannot leapfrog a configured later one
	require.NoError(t, s.SetWindow(TierPrivate, threeStageWindow(base.Add(6*time.Hour), 20)))
	assert.ErrorIs(t, s.SetWindow(TierEarlybird, threeStageWindow(base.Add(7*time.Hour), 10)), ErrOutOfOrderTier)
}

func TestSchedule_SetWindow_OutOfOrderAcrossUnsetTier(t *testing.T) {
	s := NewSchedule()
	require.NoError(t, s.SetWindow(TierCommunity, threeStageWindow(base, 30)))

	// Private is unset; Earlybird must still order against Community
	assert.ErrorIs(t, s.SetWindow(TierEarlybird, threeStageWindow(base.Add(time.Hour), 10)), ErrOutOfOrderTier)

	// and Community cannot be moved ahead of a configured Earlybird
	s = NewSchedule()
	require.NoError(t, s.SetWindow(TierEarlybird, threeStageWindow(base.Add(3*time.Hour), 10)))
	assert.ErrorIs(t, s.SetWindow(TierCommunity, threeStageWindow(base, 30)), ErrOutOfOrderTier)
}

func TestSchedule_SetWindow_FailureKeepsOldWindow(t *testing.T) {
	s := NewSchedule()
	good := threeStageWindow(base, 10)
	require.NoError(t, s.SetWindow(TierEarlybird, good))

	bad := Window{
		Stages: []Stage{
			{Start: base.Add(time.Hour), Cap: 10},
			{Start: base, Cap: 20},
		},
		Price: big.NewInt(1),
	}
	require.ErrorIs(t, s.SetWindow(TierEarlybird, bad), ErrBadStartTime)

	stored := s.Window(TierEarlybird)
	assert.Equal(t, good.Stages, stored.Stages)
	assert.Equal(t, good.Price, stored.Price)
}

func TestSchedule_Dev(t *testing.T) {
	s := NewSchedule()
	_, ok := s.ResolveDev(base)
	assert.False(t, ok)

	require.NoError(t, s.SetDevWindow(DevWindow{Start: base, Cap: 100, Price: big.NewInt(3)}))

	_, ok = s.ResolveDev(base.Add(-time.Second))
	assert.False(t, ok)

	d, ok := s.ResolveDev(base)
	require.True(t, ok)
	assert.Equal(t, uint64(100), d.Cap)
	assert.Equal(t, big.NewInt(3), d.Price)
}

func TestSchedule_SetDevWindow_Validation(t *testing.T) {
	s := NewSchedule()
	assert.ErrorIs(t, s.SetDevWindow(DevWindow{Cap: 1, Price: big.NewInt(1)}), ErrBadStartTime)
	assert.ErrorIs(t, s.SetDevWindow(DevWindow{Start: base, Cap: 0, Price: big.NewInt(1)}), ErrBadQuantity)
	assert.ErrorIs(t, s.SetDevWindow(DevWindow{Start: base, Cap: 1}), ErrBadQuantity)
}
