package input

// Toggle debounces one action. A held action fires, then input is ignored
// until Cooldown frames have passed, so holding the key fires once every
// Cooldown frames. What a firing flips is up to the caller.
type Toggle struct {
	Cooldown int
	counter  int
}

// Update advances the toggle by one frame and reports whether it fired.
func (t *Toggle) Update(held bool) bool {
	if t.counter > 0 {
		t.counter--
		if t.counter > 0 {
			return false
		}
	}
	if !held {
		return false
	}
	t.counter = t.Cooldown
	return true
}

// Toggles holds one Toggle per Action.
type Toggles struct {
	t [NumActions]Toggle
}

func NewToggles(cooldown int) *Toggles {
	ts := &Toggles{}
	for i := range ts.t {
		ts.t[i].Cooldown = cooldown
	}
	return ts
}

// Update advances every toggle with the frame's held actions and returns
// the ones that fired.
func (ts *Toggles) Update(f Frame) (fired [NumActions]bool) {
	for a := range ts.t {
		fired[a] = ts.t[a].Update(f.Held[a])
	}
	return fired
}
