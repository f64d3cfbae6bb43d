package kernel

// Context provides task-local access to kernel state during a Step.
type Context struct {
	k      *Kernel
	taskID TaskID
	now    uint64
}

// TaskID returns the current task ID.
func (c *Context) TaskID() TaskID { return c.taskID }

// NowTick returns the tick on which this step was scheduled.
func (c *Context) NowTick() uint64 { return c.now }
