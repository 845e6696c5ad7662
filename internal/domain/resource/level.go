package resource

// Level is a capacity-bounded amount. Every mutation keeps
// 0 <= Current <= Capacity.
type Level struct {
	Current  int `json:"current"`
	Capacity int `json:"capacity"`
}

func newLevel(capacity, current int) Level {
	if capacity < 0 {
		capacity = 0
	}
	l := Level{Capacity: capacity}
	l.FillUp(current)
	return l
}

// FillUp stores as much of amount as fits and returns what did not.
func (l *Level) FillUp(amount int) int {
	if amount <= 0 {
		return 0
	}
	accepted := l.Headroom()
	if accepted > amount {
		accepted = amount
	}
	l.Current += accepted
	return amount - accepted
}

func (l *Level) Consume(amount int) bool {
	if amount < 0 || amount > l.Current {
		return false
	}
	l.Current -= amount
	return true
}

func (l Level) Headroom() int {
	if l.Current >= l.Capacity {
		return 0
	}
	return l.Capacity - l.Current
}

func (l Level) IsFull() bool {
	return l.Current >= l.Capacity
}

func (l Level) IsEmpty() bool {
	return l.Current <= 0
}

// Within reports whether the level respects its bounds. Only data loaded from
// outside can violate them.
func (l Level) Within() bool {
	return l.Capacity >= 0 && l.Current >= 0 && l.Current <= l.Capacity
}

func (l *Level) level() *Level {
	return l
}
