package input

// ButtonInput is the level-state table for one kind of button. Press and
// Release are fed by the input system; gameplay reads Pressed for
// level-triggered actions and JustPressed/JustReleased for edges since the
// previous tick.
type ButtonInput[T comparable] struct {
	pressed      map[T]struct{}
	justPressed  map[T]struct{}
	justReleased map[T]struct{}
}

func NewButtonInput[T comparable]() ButtonInput[T] {
	return ButtonInput[T]{
		pressed:      make(map[T]struct{}),
		justPressed:  make(map[T]struct{}),
		justReleased: make(map[T]struct{}),
	}
}

func (b *ButtonInput[T]) init() {
	if b.pressed == nil {
		*b = NewButtonInput[T]()
	}
}

// Press records b going down. Repeated presses while held are not new edges.
func (b *ButtonInput[T]) Press(v T) {
	b.init()
	if _, held := b.pressed[v]; !held {
		b.justPressed[v] = struct{}{}
	}
	b.pressed[v] = struct{}{}
}

func (b *ButtonInput[T]) Release(v T) {
	b.init()
	if _, held := b.pressed[v]; held {
		b.justReleased[v] = struct{}{}
	}
	delete(b.pressed, v)
}

// Apply dispatches on state.
func (b *ButtonInput[T]) Apply(v T, state ButtonState) {
	if state == Pressed {
		b.Press(v)
	} else {
		b.Release(v)
	}
}

func (b *ButtonInput[T]) Pressed(v T) bool {
	_, ok := b.pressed[v]
	return ok
}

func (b *ButtonInput[T]) JustPressed(v T) bool {
	_, ok := b.justPressed[v]
	return ok
}

func (b *ButtonInput[T]) JustReleased(v T) bool {
	_, ok := b.justReleased[v]
	return ok
}

// ClearJust forgets the edges of the previous tick.
func (b *ButtonInput[T]) ClearJust() {
	clear(b.justPressed)
	clear(b.justReleased)
}

// ReleaseAll lifts every held button, e.g. when the window loses focus.
func (b *ButtonInput[T]) ReleaseAll() {
	for v := range b.pressed {
		b.Release(v)
	}
}

// Resource types the input system maintains.
type (
	MouseButtons = ButtonInput[MouseButton]
	Keys         = ButtonInput[Key]
)
