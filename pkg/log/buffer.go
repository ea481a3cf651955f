package log

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

// Buffer delivers entries to transporters asynchronously. When full, the
// oldest queued entry is dropped rather than blocking the caller.
type Buffer struct {
	entries      chan Entry
	transporters []Transporter
	dropped      atomic.Int64
	closed       atomic.Bool
	done         chan struct{}
	wg           sync.WaitGroup
}

// NewBuffer creates an async buffer with the given capacity, fanning out
// to every transporter.
func NewBuffer(capacity int, transporters ...Transporter) *Buffer {
	b := &Buffer{
		entries:      make(chan Entry, capacity),
		transporters: transporters,
		done:         make(chan struct{}),
	}
	b.wg.Add(1)
	go b.worker()
	return b
}

// Send queues an entry. Safe for concurrent use; never blocks.
func (b *Buffer) Send(entry Entry) {
	if b.closed.Load() {
		return
	}
	select {
	case b.entries <- entry:
	default:
		// Full: drop the oldest entry to make room.
		select {
		case <-b.entries:
			b.dropped.Add(1)
		default:
		}
		select {
		case b.entries <- entry:
		default:
			b.dropped.Add(1)
		}
	}
}

// DroppedCount returns how many entries were lost to overflow.
func (b *Buffer) DroppedCount() int64 {
	return b.dropped.Load()
}

// Close stops the worker and flushes whatever is still queued. Safe to
// call more than once.
func (b *Buffer) Close() {
	if !b.closed.CompareAndSwap(false, true) {
		return
	}
	close(b.done)
	b.wg.Wait()
	for {
		select {
		case entry := <-b.entries:
			b.deliver(entry)
		default:
			return
		}
	}
}

func (b *Buffer) worker() {
	defer b.wg.Done()
	for {
		select {
		case entry := <-b.entries:
			b.deliver(entry)
		case <-b.done:
			return
		}
	}
}

func (b *Buffer) deliver(entry Entry) {
	for _, t := range b.transporters {
		if err := t.Write(entry); err != nil {
			fmt.Fprintf(os.Stderr, "log transporter %q failed: %v\n", t.Name(), err)
		}
	}
}
