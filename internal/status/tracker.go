package status

import "sync"

// Snapshot is a point-in-time view of run progress.
type Snapshot struct {
	Language string `json:"language"`
	Task     int    `json:"task"`
	Done     int    `json:"done"`
	Total    int    `json:"total"`
	Finished bool   `json:"finished"`
}

// Tracker records which (language, task) is active and how far along it is.
// The runner updates it; the status server reads it.
type Tracker struct {
	mu   sync.Mutex
	snap Snapshot
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// StartTask switches the tracker to a new (language, task). done counts
// items already checkpointed from earlier runs.
func (t *Tracker) StartTask(language string, task, done, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap = Snapshot{Language: language, Task: task, Done: done, Total: total}
}

// Add records n newly completed items.
func (t *Tracker) Add(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.Done += n
}

// Finish marks the whole run as done.
func (t *Tracker) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.Finished = true
}

// Snapshot returns a copy of the current progress.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap
}
