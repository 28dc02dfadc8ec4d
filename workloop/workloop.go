// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package workloop implements the cooperative single-threaded scheduler
// that drives the engine: a FIFO queue of deferred callbacks plus a
// level-triggered wake signal. All render and effect work runs on the
// goroutine that calls RunForever; PushWork and Wake are safe to call
// from any goroutine.
package workloop

import (
	"sync"
	"sync/atomic"

	"github.com/emirpasic/gods/queues/linkedlistqueue"

	"github.com/wavetermdev/riptide/util"
)

// Work is a deferred zero-argument callback (typically an effect body).
type Work func()

type WorkLoop struct {
	preSleep func()

	lock  sync.Mutex
	queue *linkedlistqueue.Queue // of Work

	wakeCh  chan struct{}
	stopped atomic.Bool
}

// MakeWorkLoop creates a stopped loop. preSleep is invoked every time the
// queue drains, before the loop blocks waiting for a wake; this is where
// the root driver re-renders. A nil preSleep is allowed.
func MakeWorkLoop(preSleep func()) *WorkLoop {
	return &WorkLoop{
		preSleep: preSleep,
		queue:    linkedlistqueue.New(),
		wakeCh:   make(chan struct{}, 1),
	}
}

// Wake posts the (level-triggered) wake signal. Coalesced: waking an
// already-woken loop is a no-op.
func (w *WorkLoop) Wake() {
	select {
	case w.wakeCh <- struct{}{}:
	default:
	}
}

// PushWork enqueues a callback for deferred execution and wakes the loop.
func (w *WorkLoop) PushWork(work Work) {
	if work == nil {
		return
	}
	w.lock.Lock()
	w.queue.Enqueue(work)
	w.lock.Unlock()
	w.Wake()
}

// PendingCount returns the number of callbacks currently queued.
func (w *WorkLoop) PendingCount() int {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.queue.Size()
}

// Stop requests shutdown and wakes the loop. Already-queued work is still
// drained, and the loop performs one final preSleep pass, before
// RunForever returns.
func (w *WorkLoop) Stop() {
	w.stopped.Store(true)
	w.Wake()
}

func (w *WorkLoop) dequeue() (Work, bool) {
	w.lock.Lock()
	defer w.lock.Unlock()
	val, ok := w.queue.Dequeue()
	if !ok {
		return nil, false
	}
	return val.(Work), true
}

func runWorkFn(work Work) {
	defer func() {
		util.PanicHandler("workloop work fn", recover())
	}()
	work()
}

// RunWork synchronously drains everything currently queued, in FIFO order,
// including work pushed by the callbacks themselves. Returns the number of
// callbacks run. RunForever uses this per iteration; tests and custom
// drivers may call it directly.
func (w *WorkLoop) RunWork() int {
	count := 0
	for {
		work, ok := w.dequeue()
		if !ok {
			return count
		}
		runWorkFn(work)
		count++
	}
}

// RunForever is the process's main loop entry point. It alternates between
// draining the queue, invoking preSleep, and blocking on the wake signal.
// A pending stop takes effect only once the queue has been observed empty
// and a final preSleep pass has run (so a stop requested from an effect
// still gets its last render).
func (w *WorkLoop) RunForever() {
	w.stopped.Store(false)
	for {
		w.RunWork()
		if w.preSleep != nil {
			w.preSleep()
		}
		if w.stopped.Load() {
			return
		}
		// blocks until the next Wake; receiving clears the signal
		<-w.wakeCh
	}
}
