package kernel

import "testing"

type recordTask struct {
	name  string
	log   *[]string
	ticks []uint64
}

func (r *recordTask) Step(ctx *Context) {
	r.ticks = append(r.ticks, ctx.NowTick())
	if r.log != nil {
		*r.log = append(*r.log, r.name)
	}
}

func TestAddTaskRejectsZeroPeriod(t *testing.T) {
	k := New()
	if _, err := k.AddTask("bad", &recordTask{}, 0); err == nil {
		t.Fatal("expected error for zero period")
	}
	if _, err := k.AddTask("nil", nil, 1); err == nil {
		t.Fatal("expected error for nil task")
	}
}

func TestTickToRunsAtPeriod(t *testing.T) {
	k := New()
	task := &recordTask{}
	if _, err := k.AddTask("t", task, 3); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	k.TickTo(10)

	want := []uint64{3, 6, 9}
	if len(task.ticks) != len(want) {
		t.Fatalf("ran at %v, want %v", task.ticks, want)
	}
	for i := range want {
		if task.ticks[i] != want[i] {
			t.Fatalf("ran at %v, want %v", task.ticks, want)
		}
	}
	if got := k.NowTick(); got != 10 {
		t.Fatalf("NowTick() = %d, want 10", got)
	}
}

func TestTickToIgnoresPastTicks(t *testing.T) {
	k := New()
	task := &recordTask{}
	_, _ = k.AddTask("t", task, 1)

	k.TickTo(5)
	k.TickTo(3)
	k.TickTo(5)

	if len(task.ticks) != 5 {
		t.Fatalf("ran %d times, want 5", len(task.ticks))
	}
}

func TestTasksRunInRegistrationOrder(t *testing.T) {
	k := New()
	var order []string
	_, _ = k.AddTask("refresh", &recordTask{name: "refresh", log: &order}, 2)
	_, _ = k.AddTask("system", &recordTask{name: "system", log: &order}, 2)

	k.TickTo(4)

	want := []string{"refresh", "system", "refresh", "system"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestIndependentPeriods(t *testing.T) {
	k := New()
	fast := &recordTask{}
	slow := &recordTask{}
	_, _ = k.AddTask("fast", fast, 1)
	_, _ = k.AddTask("slow", slow, 4)

	k.TickTo(12)

	if len(fast.ticks) != 12 {
		t.Fatalf("fast ran %d times, want 12", len(fast.ticks))
	}
	if len(slow.ticks) != 3 {
		t.Fatalf("slow ran %d times, want 3", len(slow.ticks))
	}
}

func TestSuspendHaltsTasks(t *testing.T) {
	k := New()
	task := &recordTask{}
	_, _ = k.AddTask("t", task, 2)

	k.TickTo(4)
	if len(task.ticks) != 2 {
		t.Fatalf("ran %d times before suspend, want 2", len(task.ticks))
	}

	k.Suspend()
	if !k.Suspended() {
		t.Fatal("expected suspended")
	}
	k.TickTo(100)
	if len(task.ticks) != 2 {
		t.Fatalf("ran while suspended: %v", task.ticks)
	}

	k.Resume()
	k.TickTo(101)
	if len(task.ticks) != 2 {
		t.Fatalf("ran before a full period after resume: %v", task.ticks)
	}
	k.TickTo(102)
	if len(task.ticks) != 3 || task.ticks[2] != 102 {
		t.Fatalf("ran at %v, want third step at 102", task.ticks)
	}
}

func TestTickToBoundsCatchUp(t *testing.T) {
	k := New()
	task := &recordTask{}
	_, _ = k.AddTask("t", task, 1)

	k.TickTo(maxCatchUp * 5)

	if len(task.ticks) != maxCatchUp {
		t.Fatalf("ran %d times, want %d", len(task.ticks), maxCatchUp)
	}
	if last := task.ticks[len(task.ticks)-1]; last != maxCatchUp*5 {
		t.Fatalf("last step at %d, want %d", last, maxCatchUp*5)
	}
}

type panicTask struct{ steps int }

func (p *panicTask) Step(*Context) {
	p.steps++
	panic("boom")
}

func TestPanickingTaskIsDisabled(t *testing.T) {
	var got PanicInfo
	calls := 0
	SetPanicHandler(func(info PanicInfo) {
		calls++
		got = info
	})
	defer SetPanicHandler(nil)

	k := New()
	bad := &panicTask{}
	good := &recordTask{}
	_, _ = k.AddTask("bad", bad, 1)
	_, _ = k.AddTask("good", good, 1)

	k.TickTo(3)

	if bad.steps != 1 {
		t.Fatalf("panicking task ran %d times, want 1", bad.steps)
	}
	if len(good.ticks) != 3 {
		t.Fatalf("healthy task ran %d times, want 3", len(good.ticks))
	}
	if calls != 1 {
		t.Fatalf("panic handler called %d times, want 1", calls)
	}
	if got.Task != "bad" || got.Value != "boom" || got.Tick != 1 {
		t.Fatalf("unexpected panic info: %+v", got)
	}
	if !InPanicMode() || PanicCount() != 1 {
		t.Fatalf("InPanicMode, PanicCount = %v, %d; want true, 1", InPanicMode(), PanicCount())
	}
}
