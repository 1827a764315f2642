package diag

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer_TrackAccumulates(t *testing.T) {
	var timer Timer
	for i := 0; i < 3; i++ {
		err := timer.Track(func() error {
			time.Sleep(time.Millisecond)
			return nil
		})
		require.NoError(t, err)
	}

	snap := timer.Snapshot()
	assert.Equal(t, int64(3), snap.Calls)
	assert.True(t, snap.Total > 0)
	assert.True(t, snap.Mean() > 0)
}

func TestTimer_TrackPropagatesError(t *testing.T) {
	var timer Timer
	wantErr := errors.New("boom")
	err := timer.Track(func() error { return wantErr })
	assert.Equal(t, wantErr, err)
	assert.Equal(t, int64(1), timer.Snapshot().Calls)
}

func TestTimer_ResetZeroes(t *testing.T) {
	var timer Timer
	_ = timer.Track(func() error { return nil })
	timer.Reset()
	snap := timer.Snapshot()
	assert.Equal(t, int64(0), snap.Calls)
	assert.Equal(t, time.Duration(0), snap.Total)
}

func TestSnapshot_MeanOfNoCallsIsZero(t *testing.T) {
	assert.Equal(t, time.Duration(0), Snapshot{}.Mean())
}
