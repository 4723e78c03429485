package service

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// For any burst of events offered to one grouping key within a single window,
// every event is accounted for exactly once: flushed in a size-limited summary
// or still buffered for the stale sweep. No flush ever exceeds the window size
// limit.
func TestProperty_GroupBufferConservation(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("every event is flushed or buffered exactly once", prop.ForAll(
		func(eventCount, maxSize int) bool {
			buffer := NewGroupBuffer(5*time.Minute, maxSize)
			now := time.Now()
			buffer.now = func() time.Time { return now }

			flushed := 0
			for i := 0; i < eventCount; i++ {
				outcome := buffer.Add("key", GroupItem{At: now})
				if outcome.Decision == DecisionFlushed {
					if len(outcome.Items) > maxSize {
						return false
					}
					flushed += len(outcome.Items)
				}
			}

			// Advance past the window; the sweep drains whatever is left.
			now = now.Add(6 * time.Minute)
			remaining := 0
			for _, stale := range buffer.FlushStale() {
				remaining += len(stale.Items)
			}

			return flushed+remaining == eventCount && buffer.Len() == 0
		},
		gen.IntRange(1, 200),
		gen.IntRange(2, 20),
	))

	properties.TestingRun(t)
}

// Within a single window a flush fires exactly once per maxSize events and
// always carries exactly maxSize items, so no summary fires early and nothing
// beyond the tail is left for the sweep.
func TestProperty_GroupBufferFlushesAtExactThreshold(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("one full flush per maxSize events", prop.ForAll(
		func(eventCount, maxSize int) bool {
			buffer := NewGroupBuffer(5*time.Minute, maxSize)
			now := time.Now()
			buffer.now = func() time.Time { return now }

			flushes := 0
			for i := 0; i < eventCount; i++ {
				outcome := buffer.Add("key", GroupItem{At: now})
				if outcome.Decision == DecisionFlushed {
					if len(outcome.Items) != maxSize {
						return false
					}
					flushes++
				}
			}

			if flushes != eventCount/maxSize {
				return false
			}
			if eventCount%maxSize == 0 {
				return buffer.Len() == 0
			}
			return buffer.Len() == 1
		},
		gen.IntRange(1, 200),
		gen.IntRange(2, 20),
	))

	properties.TestingRun(t)
}
