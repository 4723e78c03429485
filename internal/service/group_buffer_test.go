package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestBuffer(window time.Duration, maxSize int) (*GroupBuffer, *time.Time) {
	b := NewGroupBuffer(window, maxSize)
	current := time.Now()
	b.now = func() time.Time { return current }
	return b, &current
}

func TestGroupBuffer_FirstEventOpensWindowSilently(t *testing.T) {
	b, _ := newTestBuffer(5*time.Minute, 10)

	outcome := b.Add("survey:1", GroupItem{})

	assert.Equal(t, DecisionBuffered, outcome.Decision)
	assert.Empty(t, outcome.Items)
	assert.Equal(t, 1, b.Len())
}

func TestGroupBuffer_SubsequentEventsBuffer(t *testing.T) {
	b, _ := newTestBuffer(5*time.Minute, 10)

	b.Add("survey:1", GroupItem{})
	outcome := b.Add("survey:1", GroupItem{})

	assert.Equal(t, DecisionBuffered, outcome.Decision)
}

func TestGroupBuffer_KeysAreIndependent(t *testing.T) {
	b, _ := newTestBuffer(5*time.Minute, 10)

	b.Add("survey:1", GroupItem{})
	outcome := b.Add("survey:2", GroupItem{})

	assert.Equal(t, DecisionBuffered, outcome.Decision)
	assert.Equal(t, 2, b.Len())
}

func TestGroupBuffer_FlushAtMaxSize(t *testing.T) {
	b, _ := newTestBuffer(5*time.Minute, 3)

	assert.Equal(t, DecisionBuffered, b.Add("survey:1", GroupItem{}).Decision)
	assert.Equal(t, DecisionBuffered, b.Add("survey:1", GroupItem{}).Decision)

	outcome := b.Add("survey:1", GroupItem{})

	// The third event fills the window; the opener counts toward the size.
	assert.Equal(t, DecisionFlushed, outcome.Decision)
	assert.Len(t, outcome.Items, 3)
	// The flushed window is gone; the next event opens a fresh one.
	assert.Equal(t, DecisionBuffered, b.Add("survey:1", GroupItem{}).Decision)
	assert.Equal(t, 1, b.Len())
}

func TestGroupBuffer_NothingFlushesBelowMaxSize(t *testing.T) {
	b, _ := newTestBuffer(5*time.Minute, 10)

	for i := 0; i < 9; i++ {
		assert.Equal(t, DecisionBuffered, b.Add("survey:1", GroupItem{}).Decision)
	}

	outcome := b.Add("survey:1", GroupItem{})

	assert.Equal(t, DecisionFlushed, outcome.Decision)
	assert.Len(t, outcome.Items, 10)
}

func TestGroupBuffer_FlushStale(t *testing.T) {
	b, current := newTestBuffer(5*time.Minute, 10)

	b.Add("survey:1", GroupItem{})
	b.Add("survey:1", GroupItem{})
	b.Add("survey:1", GroupItem{})
	b.Add("survey:2", GroupItem{})

	assert.Empty(t, b.FlushStale())

	*current = current.Add(6 * time.Minute)
	stale := b.FlushStale()

	assert.Len(t, stale, 2)
	byKey := map[string]int{}
	for _, s := range stale {
		byKey[s.Key] = len(s.Items)
	}
	assert.Equal(t, 3, byKey["survey:1"])
	assert.Equal(t, 1, byKey["survey:2"])
	assert.Zero(t, b.Len())
}

func TestGroupBuffer_ExpiredWindowFlushesOnAdd(t *testing.T) {
	b, current := newTestBuffer(5*time.Minute, 10)

	b.Add("survey:1", GroupItem{})
	b.Add("survey:1", GroupItem{})

	*current = current.Add(6 * time.Minute)
	outcome := b.Add("survey:1", GroupItem{})

	// The buffered items plus the new one come out together rather than
	// being dropped when the fresh window starts.
	assert.Equal(t, DecisionFlushed, outcome.Decision)
	assert.Len(t, outcome.Items, 3)
	assert.Zero(t, b.Len())
}
