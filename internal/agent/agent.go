package agent

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/leonardinius/esvalue/internal/object"
	"github.com/leonardinius/esvalue/internal/promise"
	"github.com/leonardinius/esvalue/internal/value"
)

// Job is a unit of work run to completion on the engine goroutine.
type Job func() error

// Agent owns the job queue of one engine goroutine and the set of objects
// kept alive until the current job ends.
//
// Only Post, BeginHostOp and EndHostOp may be called from other goroutines.
type Agent struct {
	log           *logrus.Entry
	realm         *object.Realm
	newCapability func(a *Agent) *promise.Capability

	jobs []Job

	mu      sync.Mutex
	cond    *sync.Cond
	posted  []Job
	hostOps int

	kept       []value.Value
	keptClears int
}

// New returns an agent for realm and installs the promise intrinsics on it.
func New(realm *object.Realm, options ...Option) *Agent {
	opts := newAgentOpts(options...)
	a := &Agent{
		log:           opts.log,
		realm:         realm,
		newCapability: opts.newCapability,
		jobs:          make([]Job, 0, 16),
	}
	a.cond = sync.NewCond(&a.mu)
	promise.Install(realm, a)
	return a
}

func (a *Agent) Realm() *object.Realm {
	return a.realm
}

func (a *Agent) Logger() *logrus.Entry {
	return a.log
}

// NewPromiseCapability allocates a promise through the configured hook.
func (a *Agent) NewPromiseCapability() *promise.Capability {
	return a.newCapability(a)
}

// Enqueue queues a job from the engine goroutine. It implements promise.Scheduler.
func (a *Agent) Enqueue(job func() error) {
	a.jobs = append(a.jobs, job)
}

// Post queues a job from any goroutine and wakes RunUntilIdle.
func (a *Agent) Post(job Job) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.posted = append(a.posted, job)
	a.cond.Broadcast()
}

// BeginHostOp marks the start of a host computation that will Post its result.
func (a *Agent) BeginHostOp() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hostOps++
}

// EndHostOp marks the completion of a host computation. Post the settlement
// job before calling it.
func (a *Agent) EndHostOp() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hostOps--
	a.cond.Broadcast()
}

// PendingHostOps returns the number of host computations still running.
func (a *Agent) PendingHostOps() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hostOps
}

// RunJob runs job to completion and then empties the kept-alive set, whether
// or not the job failed.
func (a *Agent) RunJob(job Job) error {
	defer a.ClearKeptObjects()
	err := job()
	if err != nil {
		a.log.WithError(err).Debug("job failed")
	}
	return err
}

// RunJobs drains the engine queue, including jobs queued while draining.
// It returns the first job error after the queue is empty.
func (a *Agent) RunJobs() error {
	var first error
	for len(a.jobs) > 0 {
		job := a.jobs[0]
		a.jobs[0] = nil
		a.jobs = a.jobs[1:]
		if err := a.RunJob(job); err != nil && first == nil {
			first = err
		}
	}
	a.jobs = a.jobs[:0]
	return first
}

func (a *Agent) takePosted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.posted) == 0 {
		return false
	}
	a.jobs = append(a.jobs, a.posted...)
	a.posted = nil
	return true
}

// RunUntilIdle runs jobs until the queue is empty and no host computation is
// pending, or until ctx is done.
func (a *Agent) RunUntilIdle(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.cond.Broadcast()
	})
	defer stop()

	var first error
	for {
		a.takePosted()
		if len(a.jobs) > 0 {
			if err := a.RunJobs(); err != nil && first == nil {
				first = err
			}
			continue
		}

		a.mu.Lock()
		for len(a.posted) == 0 && a.hostOps > 0 && ctx.Err() == nil {
			a.log.WithField("host_ops", a.hostOps).Trace("waiting for host completion")
			a.cond.Wait()
		}
		idle := len(a.posted) == 0
		a.mu.Unlock()

		if idle {
			if err := ctx.Err(); err != nil && first == nil {
				first = err
			}
			return first
		}
	}
}

// AddToKeptObjects keeps v alive until the current job ends.
func (a *Agent) AddToKeptObjects(v value.Value) {
	a.kept = append(a.kept, v)
}

// ClearKeptObjects empties the kept-alive set.
func (a *Agent) ClearKeptObjects() {
	if len(a.kept) > 0 {
		a.log.WithField("kept", len(a.kept)).Trace("clearing kept objects")
	}
	clear(a.kept)
	a.kept = a.kept[:0]
	a.keptClears++
}

// KeptObjects returns the number of values currently kept alive.
func (a *Agent) KeptObjects() int {
	return len(a.kept)
}

// KeptClears returns how many times the kept-alive set has been cleared.
func (a *Agent) KeptClears() int {
	return a.keptClears
}

var _ promise.Scheduler = (*Agent)(nil)
