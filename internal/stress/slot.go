package stress

// Slot passes the most recent reading from the monitor goroutine to the
// frame loop. Publishing never blocks and replaces an unread reading.
type Slot struct {
	ch chan Reading
}

// NewSlot creates an empty slot.
func NewSlot() *Slot {
	return &Slot{ch: make(chan Reading, 1)}
}

// Publish stores r, discarding any reading not yet taken.
func (s *Slot) Publish(r Reading) {
	for {
		select {
		case s.ch <- r:
			return
		default:
		}
		select {
		case <-s.ch:
		default:
		}
	}
}

// Latest takes the pending reading, if any.
func (s *Slot) Latest() (Reading, bool) {
	select {
	case r := <-s.ch:
		return r, true
	default:
		return Reading{}, false
	}
}
