package audit

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingWriter struct {
	mu      sync.Mutex
	actions []string
	fail    bool
}

func (w *recordingWriter) Log(_ *uint, action, _ string, _ *uint, _ any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.fail {
		return errors.New("write failed")
	}
	w.actions = append(w.actions, action)
	return nil
}

func (w *recordingWriter) recorded() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.actions...)
}

func TestDispatcherDrainsQueueOnClose(t *testing.T) {
	w := &recordingWriter{}
	d := NewDispatcher(w)

	for i := 0; i < 20; i++ {
		d.Dispatch(Event{Action: fmt.Sprintf("event_%d", i)})
	}
	d.Close()

	actions := w.recorded()
	assert.Len(t, actions, 20)
	assert.Equal(t, "event_0", actions[0])
	assert.Equal(t, "event_19", actions[19])
}

func TestDispatcherSurvivesWriterErrors(t *testing.T) {
	w := &recordingWriter{fail: true}
	d := NewDispatcher(w)

	d.Dispatch(Event{Action: "ignored"})
	d.Close()

	assert.Empty(t, w.recorded())
}
