package server

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobLifecycle(t *testing.T) {
	js := newJobs()
	assert.Equal(t, stateIdle, js.status("fern").State)

	release := make(chan struct{})
	st, err := js.start("fern", func() error {
		<-release
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, stateRendering, st.State)

	_, err = js.start("fern", func() error { return nil })
	assert.ErrorIs(t, err, errBusy)
	assert.ErrorIs(t, js.forget("fern"), errBusy)

	close(release)
	js.wait()
	st = js.status("fern")
	assert.Equal(t, stateDone, st.State)
	assert.NotEmpty(t, st.Duration)

	_, err = js.start("fern", func() error { return errors.New("boom") })
	require.NoError(t, err)
	js.wait()
	st = js.status("fern")
	assert.Equal(t, stateFailed, st.State)
	assert.Equal(t, "boom", st.Error)

	// a failed job can be retried, which clears the error
	_, err = js.start("fern", func() error { return nil })
	require.NoError(t, err)
	js.wait()
	assert.Eventually(t, func() bool {
		st := js.status("fern")
		return st.State == stateDone && st.Error == ""
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, js.forget("fern"))
	assert.Equal(t, stateIdle, js.status("fern").State)
}
