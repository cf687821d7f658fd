package profiling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResetWindowClearsTotals(t *testing.T) {
	ResetWindow()
	func() {
		defer Track("stage.a")()
	}()
	ResetWindow()
	require.Equal(t, "", TopN(5))
}

func TestTrackStopsOnDeferredCall(t *testing.T) {
	ResetWindow()
	func() {
		defer Track("stage.tracked")()
		time.Sleep(2 * time.Millisecond)
	}()

	top := TopN(1)
	require.Contains(t, top, "stage.tracked")
}

func TestTopNOrdersByDuration(t *testing.T) {
	ResetWindow()
	func() {
		defer Track("small")()
	}()
	func() {
		defer Track("large")()
		time.Sleep(10 * time.Millisecond)
	}()
	func() {
		defer Track("medium")()
		time.Sleep(5 * time.Millisecond)
	}()

	top := TopN(2)
	require.Contains(t, top, "large")
	require.Contains(t, top, "medium")
	require.NotContains(t, top, "small")
}

func TestTopNClampsToAvailableCount(t *testing.T) {
	ResetWindow()
	func() {
		defer Track("only")()
	}()

	top := TopN(5)
	require.Contains(t, top, "only")
}
