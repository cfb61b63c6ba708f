package tui

import (
	"testing"
	"time"
)

func TestTeaSchedulerFire(t *testing.T) {
	sch := newTeaScheduler()

	var ran []string
	cancelFirst := sch.AfterFunc(time.Second, func() { ran = append(ran, "first") })
	sch.AfterFunc(time.Second, func() { ran = append(ran, "second") })

	if cmd := sch.drain(); cmd == nil {
		t.Fatal("drain should return the queued ticks")
	}
	if cmd := sch.drain(); cmd != nil {
		t.Error("second drain should be empty")
	}

	cancelFirst()
	if sch.fire(1) {
		t.Error("cancelled continuation should not run")
	}
	if !sch.fire(2) {
		t.Error("pending continuation should run")
	}
	if sch.fire(2) {
		t.Error("a continuation runs at most once")
	}

	if len(ran) != 1 || ran[0] != "second" {
		t.Errorf("ran = %v, expected only the second continuation", ran)
	}
	if len(sch.pending) != 0 {
		t.Errorf("pending = %d, expected none", len(sch.pending))
	}
}

func TestTeaSchedulerTickMessage(t *testing.T) {
	sch := newTeaScheduler()
	sch.AfterFunc(time.Millisecond, func() {})

	cmd := sch.drain()
	if cmd == nil {
		t.Fatal("expected a tick command")
	}
	msg, ok := cmd().(opponentShotMsg)
	if !ok {
		t.Fatalf("tick produced %T, expected opponentShotMsg", msg)
	}
	if msg.id != 1 {
		t.Errorf("id = %d, expected 1", msg.id)
	}
}
