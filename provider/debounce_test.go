// Copyright © 2025 The Lantern authors

package provider

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never became true")
}

func TestDebouncerCoalescesRapidTriggers(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var ran int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { atomic.AddInt32(&ran, 1) })
		time.Sleep(2 * time.Millisecond)
	}

	waitFor(t, func() bool { return atomic.LoadInt32(&ran) > 0 })
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&ran), "only the last trigger runs")
}

func TestDebouncerFlushRunsImmediately(t *testing.T) {
	d := NewDebouncer(time.Hour)
	defer d.Stop()

	var pending int32
	d.Trigger(func() { atomic.AddInt32(&pending, 1) })

	var flushed bool
	d.Flush(func() { flushed = true })

	assert.True(t, flushed, "flush runs synchronously")
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&pending), "the pending trigger was cancelled")
}

func TestDebouncerStopCancelsAndRejects(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	var ran int32
	d.Trigger(func() { atomic.AddInt32(&ran, 1) })
	d.Stop()

	d.Trigger(func() { atomic.AddInt32(&ran, 1) })
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&ran))
}
