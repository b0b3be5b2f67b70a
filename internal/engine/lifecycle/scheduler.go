package lifecycle

// FrameID identifies a pending frame request. The zero value is never issued.
type FrameID uint64

// Scheduler queues callbacks for the next display refresh. The app loop calls
// Fire once per vsync'd iteration, which gives the requestAnimationFrame
// model: one callback run per refresh, and explicit cancellation.
type Scheduler struct {
	next    FrameID
	order   []FrameID
	pending map[FrameID]func()
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[FrameID]func())}
}

// Request queues fn for the next Fire.
func (s *Scheduler) Request(fn func()) FrameID {
	s.next++
	id := s.next
	s.order = append(s.order, id)
	s.pending[id] = fn
	return id
}

// Cancel drops a pending request. It reports whether the request was still
// pending.
func (s *Scheduler) Cancel(id FrameID) bool {
	if _, ok := s.pending[id]; !ok {
		return false
	}
	delete(s.pending, id)
	return true
}

// Pending returns the number of callbacks waiting for the next Fire.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Fire runs the callbacks requested before this call, in request order, and
// returns how many ran. Callbacks requested while firing wait for the next
// Fire; callbacks cancelled while firing do not run.
func (s *Scheduler) Fire() int {
	batch := s.order
	s.order = nil

	ran := 0
	for _, id := range batch {
		fn, ok := s.pending[id]
		if !ok {
			continue
		}
		delete(s.pending, id)
		fn()
		ran++
	}
	return ran
}
