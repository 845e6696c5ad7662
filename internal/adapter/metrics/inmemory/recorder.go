package inmemory

import "sync"

type Snapshot struct {
	PassTotal      uint64 `json:"pass_total"`
	PassIdle       uint64 `json:"pass_idle"`
	PassConflict   uint64 `json:"pass_conflict"`
	PassFailure    uint64 `json:"pass_failure"`
	PassCapped     uint64 `json:"pass_capped"`
	TicksAccounted uint64 `json:"ticks_accounted"`
	StarvedCount   uint64 `json:"starved_count"`
}

type Recorder struct {
	mu       sync.Mutex
	passes   uint64
	idle     uint64
	conflict uint64
	failure  uint64
	capped   uint64
	ticks    uint64
	starved  uint64
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// RecordPass counts one committed pass. A pass with zero ticks is idle.
func (r *Recorder) RecordPass(ticks, starved int, moreRemaining bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passes++
	if ticks == 0 {
		r.idle++
	}
	if moreRemaining {
		r.capped++
	}
	if ticks > 0 {
		r.ticks += uint64(ticks)
	}
	if starved > 0 {
		r.starved += uint64(starved)
	}
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		PassTotal:      r.passes + r.conflict + r.failure,
		PassIdle:       r.idle,
		PassConflict:   r.conflict,
		PassFailure:    r.failure,
		PassCapped:     r.capped,
		TicksAccounted: r.ticks,
		StarvedCount:   r.starved,
	}
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
