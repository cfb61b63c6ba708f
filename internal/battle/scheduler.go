package battle

import (
	"sync"
	"time"
)

// Scheduler runs fn once after delay d. The returned cancel func prevents fn
// from running if it has not started yet; calling it more than once is safe.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// TimerScheduler schedules on real time using time.AfterFunc. The callback
// runs on its own goroutine.
type TimerScheduler struct{}

// AfterFunc implements Scheduler.
func (TimerScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

type manualTask struct {
	id    uint64
	delay time.Duration
	fn    func()
}

// ManualScheduler queues callbacks until they are run explicitly. It is used
// by tests and by drivers that want to step the opponent by hand.
type ManualScheduler struct {
	mu    sync.Mutex
	next  uint64
	tasks []manualTask
}

// NewManualScheduler creates an empty scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc implements Scheduler. The delay is recorded but not waited for.
func (m *ManualScheduler) AfterFunc(d time.Duration, fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.next++
	id := m.next
	m.tasks = append(m.tasks, manualTask{id: id, delay: d, fn: fn})

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, t := range m.tasks {
			if t.id == id {
				m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
				return
			}
		}
	}
}

// Pending returns the number of queued callbacks.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// NextDelay returns the delay of the oldest queued callback.
func (m *ManualScheduler) NextDelay() (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tasks) == 0 {
		return 0, false
	}
	return m.tasks[0].delay, true
}

// RunNext runs the oldest queued callback. It reports false when the queue
// is empty.
func (m *ManualScheduler) RunNext() bool {
	m.mu.Lock()
	if len(m.tasks) == 0 {
		m.mu.Unlock()
		return false
	}
	task := m.tasks[0]
	m.tasks = m.tasks[1:]
	m.mu.Unlock()

	task.fn()
	return true
}

// RunAll runs callbacks until the queue is empty, including ones scheduled
// by the callbacks themselves. It returns how many ran.
func (m *ManualScheduler) RunAll() int {
	n := 0
	for m.RunNext() {
		n++
	}
	return n
}

var (
	_ Scheduler = TimerScheduler{}
	_ Scheduler = (*ManualScheduler)(nil)
)
