package event

import "reflect"

// Bus holds one append-only log per event type. Each reader keeps its own
// cursor into the log, so every reader sees every event once, in emission
// order, independently of other readers. Compact drops the prefix that all
// live readers have already passed.
type Bus struct {
	logs  map[reflect.Type]compactor
	order []compactor
}

type compactor interface {
	compact()
	retained() int
}

func NewBus() *Bus {
	return &Bus{logs: make(map[reflect.Type]compactor)}
}

func logOf[E any](b *Bus) *eventLog[E] {
	t := reflect.TypeOf((*E)(nil)).Elem()
	if l, ok := b.logs[t]; ok {
		return l.(*eventLog[E])
	}
	l := &eventLog[E]{readers: make(map[*Reader[E]]struct{})}
	b.logs[t] = l
	b.order = append(b.order, l)
	return l
}

// Send appends an event to E's log.
func Send[E any](b *Bus, ev E) {
	l := logOf[E](b)
	l.entries = append(l.entries, ev)
}

// NewReader registers a cursor positioned at the oldest event still retained.
func NewReader[E any](b *Bus) *Reader[E] {
	l := logOf[E](b)
	r := &Reader[E]{log: l, cursor: l.base}
	l.readers[r] = struct{}{}
	return r
}

// Retained returns how many E events the bus currently keeps.
func Retained[E any](b *Bus) int {
	return logOf[E](b).retained()
}

// Compact discards, for every event type, the entries all live readers have
// drained. A log without readers is emptied.
func (b *Bus) Compact() {
	for _, l := range b.order {
		l.compact()
	}
}

type eventLog[E any] struct {
	base    uint64 // sequence number of entries[0]
	entries []E
	readers map[*Reader[E]]struct{}
}

func (l *eventLog[E]) end() uint64 { return l.base + uint64(len(l.entries)) }

func (l *eventLog[E]) retained() int { return len(l.entries) }

func (l *eventLog[E]) compact() {
	low := l.end()
	for r := range l.readers {
		if r.cursor < low {
			low = r.cursor
		}
	}
	drop := int(low - l.base)
	if drop == 0 {
		return
	}
	// Copy into a fresh slice so the dropped prefix can be collected.
	rest := make([]E, len(l.entries)-drop, len(l.entries)-drop+16)
	copy(rest, l.entries[drop:])
	l.entries = rest
	l.base = low
}

// Reader is one consumer's cursor into an event log.
type Reader[E any] struct {
	log    *eventLog[E]
	cursor uint64
}

// Read returns every event appended since the previous Read and advances the
// cursor past them. The returned slice must not be modified.
func (r *Reader[E]) Read() []E {
	l := r.log
	start := int(r.cursor - l.base)
	end := len(l.entries)
	r.cursor = l.end()
	if start == end {
		return nil
	}
	return l.entries[start:end:end]
}

// Last drains the reader and returns only the newest event.
func (r *Reader[E]) Last() (E, bool) {
	evs := r.Read()
	if len(evs) == 0 {
		var zero E
		return zero, false
	}
	return evs[len(evs)-1], true
}

// Pending reports how many events Read would return.
func (r *Reader[E]) Pending() int {
	return int(r.log.end() - r.cursor)
}

// Close unregisters the reader so it no longer holds back compaction.
func (r *Reader[E]) Close() {
	delete(r.log.readers, r)
}
