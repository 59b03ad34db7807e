package input

import (
	"sync/atomic"

	"github.com/topdown/shooter/internal/vmath"
)

// Sample is one raw observation from a driver. Exactly one of the pointers
// is set.
type Sample struct {
	Cursor *CursorMoved
	Mouse  *MouseButtonInput
	Key    *KeyboardInput
}

// Queue hands samples from capture goroutines to the game loop. Pushes
// never block; when the buffer is full the sample is dropped and counted.
type Queue struct {
	ch      chan Sample
	dropped atomic.Uint64
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 256
	}
	return &Queue{ch: make(chan Sample, size)}
}

func (q *Queue) push(s Sample) {
	select {
	case q.ch <- s:
	default:
		q.dropped.Add(1)
	}
}

func (q *Queue) PushCursor(x, y float64) {
	q.push(Sample{Cursor: &CursorMoved{Position: vmath.Vec2{X: x, Y: y}}})
}

func (q *Queue) PushButton(b MouseButton, s ButtonState) {
	q.push(Sample{Mouse: &MouseButtonInput{Button: b, State: s}})
}

func (q *Queue) PushKey(k Key, s ButtonState) {
	q.push(Sample{Key: &KeyboardInput{Key: k, State: s}})
}

// Drain calls fn for up to max queued samples in arrival order and returns
// how many it consumed. max <= 0 drains everything currently queued.
func (q *Queue) Drain(max int, fn func(Sample)) int {
	n := 0
	for max <= 0 || n < max {
		select {
		case s := <-q.ch:
			fn(s)
			n++
		default:
			return n
		}
	}
	return n
}

func (q *Queue) Len() int { return len(q.ch) }

// Dropped reports how many samples were discarded on a full buffer.
func (q *Queue) Dropped() uint64 { return q.dropped.Load() }
