package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"workspace-service/internal/domain"
)

// GroupDecision is the outcome of offering one event to the buffer.
type GroupDecision int

const (
	// DecisionBuffered: the event was absorbed into a window, opening
	// one if none was live for its key. Nothing is delivered yet.
	DecisionBuffered GroupDecision = iota
	// DecisionFlushed: the event filled the window to its size limit;
	// the returned items must be delivered as one summary.
	DecisionFlushed
)

// GroupItem is one buffered event awaiting a summary flush.
type GroupItem struct {
	Input      domain.DispatchInput
	Recipients []uuid.UUID
	ActionURL  string
	At         time.Time
}

// GroupOutcome is the buffer's answer for a single event.
type GroupOutcome struct {
	Decision GroupDecision
	Items    []GroupItem
}

// StaleGroup is a window whose interval elapsed before it filled up.
type StaleGroup struct {
	Key   string
	Items []GroupItem
}

type bufferEntry struct {
	startedAt time.Time
	items     []GroupItem
}

// GroupBuffer coalesces bursts of groupable events per key. The first event
// of a window opens it silently; events accumulate until the window fills
// (maxSize items, the opener included) or goes stale and is swept by
// FlushStale.
type GroupBuffer struct {
	mu      sync.Mutex
	groups  map[string]*bufferEntry
	window  time.Duration
	maxSize int
	now     func() time.Time
}

func NewGroupBuffer(window time.Duration, maxSize int) *GroupBuffer {
	return &GroupBuffer{
		groups:  make(map[string]*bufferEntry),
		window:  window,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Add offers one event to the buffer and returns what to do with it.
func (b *GroupBuffer) Add(key string, item GroupItem) GroupOutcome {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	entry, ok := b.groups[key]
	if ok && now.Sub(entry.startedAt) >= b.window {
		// Anything still buffered in an expired window belongs to the
		// sweep; starting fresh here would silently drop it. Flush the
		// leftovers together with the new event instead.
		items := append(entry.items, item)
		delete(b.groups, key)
		return GroupOutcome{Decision: DecisionFlushed, Items: items}
	}
	if !ok {
		b.groups[key] = &bufferEntry{startedAt: now, items: []GroupItem{item}}
		return GroupOutcome{Decision: DecisionBuffered}
	}

	entry.items = append(entry.items, item)
	if len(entry.items) >= b.maxSize {
		items := entry.items
		delete(b.groups, key)
		return GroupOutcome{Decision: DecisionFlushed, Items: items}
	}
	return GroupOutcome{Decision: DecisionBuffered}
}

// FlushStale drains and returns every window whose interval elapsed before
// it filled up.
func (b *GroupBuffer) FlushStale() []StaleGroup {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	var stale []StaleGroup
	for key, entry := range b.groups {
		if now.Sub(entry.startedAt) < b.window {
			continue
		}
		stale = append(stale, StaleGroup{Key: key, Items: entry.items})
		delete(b.groups, key)
	}
	return stale
}

// Len reports the number of open windows.
func (b *GroupBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.groups)
}
