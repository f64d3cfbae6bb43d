package kernel

import (
	"fmt"
	"sync"
)

const (
	maxTasks = 8

	// maxCatchUp bounds how many missed ticks TickTo replays. Larger gaps
	// (host stalls, debugger pauses) re-arm every task from the new tick.
	maxCatchUp = 1000
)

type TaskID uint8

// Task is a periodic unit of work, run from tick context.
//
// Step must not block and must not perform I/O. It is the Go rendering of an
// interrupt handler: tasks never preempt each other.
type Task interface {
	Step(*Context)
}

type taskState struct {
	task     Task
	name     string
	period   uint64
	due      uint64
	disabled bool
}

// Kernel is a cooperative scheduler for periodic tasks.
//
// Each task owns a compare threshold. When the tick counter reaches it the
// threshold is advanced by the task period (never recomputed from "now"), so
// the cadence does not drift with the work done inside Step.
type Kernel struct {
	mu sync.Mutex

	tasks     [maxTasks]taskState
	taskCount TaskID

	now       uint64
	suspended bool
}

// New creates a kernel instance.
func New() *Kernel {
	return &Kernel{}
}

// AddTask registers a task that first runs one period from now.
//
// Tasks that fall due on the same tick run in registration order.
func (k *Kernel) AddTask(name string, t Task, period uint64) (TaskID, error) {
	if t == nil {
		return 0, fmt.Errorf("kernel: add task %q: nil task", name)
	}
	if period == 0 {
		return 0, fmt.Errorf("kernel: add task %q: zero period", name)
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if k.taskCount >= maxTasks {
		return 0, fmt.Errorf("kernel: add task %q: task table full", name)
	}
	id := k.taskCount
	k.taskCount++
	k.tasks[id] = taskState{task: t, name: name, period: period, due: k.now + period}
	return id, nil
}

// NowTick returns the last tick the kernel has processed.
func (k *Kernel) NowTick() uint64 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.now
}

// TickTo advances the kernel to seq, running every task that falls due.
//
// Ticks that arrive while the kernel is suspended are consumed without
// running anything: the timers are halted together with the processor.
func (k *Kernel) TickTo(seq uint64) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if seq <= k.now {
		return
	}
	if k.suspended {
		k.now = seq
		return
	}
	if seq-k.now > maxCatchUp {
		k.now = seq - maxCatchUp
		k.rearmLocked()
	}
	for k.now < seq {
		k.now++
		k.runDueLocked()
	}
}

// Suspend stops all timers until Resume is called.
func (k *Kernel) Suspend() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.suspended = true
}

// Resume restarts the timers. Every task is re-armed one period from the
// current tick.
func (k *Kernel) Resume() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.suspended {
		return
	}
	k.suspended = false
	k.rearmLocked()
}

// Suspended reports whether the timers are halted.
func (k *Kernel) Suspended() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.suspended
}

func (k *Kernel) rearmLocked() {
	for id := TaskID(0); id < k.taskCount; id++ {
		st := &k.tasks[id]
		st.due = k.now + st.period
	}
}

func (k *Kernel) runDueLocked() {
	for id := TaskID(0); id < k.taskCount; id++ {
		st := &k.tasks[id]
		if st.disabled || st.due != k.now {
			continue
		}
		st.due += st.period
		k.stepLocked(id, st)
	}
}

func (k *Kernel) stepLocked(id TaskID, st *taskState) {
	defer func() {
		if r := recover(); r != nil {
			st.disabled = true
			reportPanic(PanicInfo{TaskID: id, Task: st.name, Tick: k.now, Value: r})
		}
	}()
	st.task.Step(&Context{k: k, taskID: id, now: k.now})
}
