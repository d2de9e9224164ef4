package server

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/looplab/fsm"
)

const (
	stateIdle      = "idle"
	stateRendering = "rendering"
	stateDone      = "done"
	stateFailed    = "failed"

	eventStart  = "start"
	eventFinish = "finish"
	eventFail   = "fail"
)

var errBusy = errors.New("project is already rendering")

type JobStatus struct {
	State     string    `json:"state"`
	Error     string    `json:"error,omitempty"`
	StartedAt time.Time `json:"startedAt,omitempty"`
	Duration  string    `json:"duration,omitempty"`
}

type job struct {
	fsm *fsm.FSM

	err      string
	started  time.Time
	finished time.Time
}

func newJob() *job {
	j := &job{}
	j.fsm = fsm.NewFSM(
		stateIdle,
		fsm.Events{
			{Name: eventStart, Src: []string{stateIdle, stateDone, stateFailed}, Dst: stateRendering},
			{Name: eventFinish, Src: []string{stateRendering}, Dst: stateDone},
			{Name: eventFail, Src: []string{stateRendering}, Dst: stateFailed},
		},
		fsm.Callbacks{
			"enter_" + stateRendering: func(e *fsm.Event) {
				j.err = ""
				j.started = time.Now()
				j.finished = time.Time{}
			},
			"leave_" + stateRendering: func(e *fsm.Event) {
				j.finished = time.Now()
			},
			"enter_" + stateFailed: func(e *fsm.Event) {
				if len(e.Args) > 0 {
					j.err = fmt.Sprint(e.Args[0])
				}
			},
		},
	)

	return j
}

func (j *job) status() JobStatus {
	st := JobStatus{State: j.fsm.Current(), Error: j.err, StartedAt: j.started}
	switch {
	case j.started.IsZero():
	case j.finished.IsZero():
		st.Duration = time.Since(j.started).Round(time.Millisecond).String()
	default:
		st.Duration = j.finished.Sub(j.started).Round(time.Millisecond).String()
	}
	return st
}

// jobs tracks one render state machine per project.
type jobs struct {
	lock sync.Mutex
	jobs map[string]*job
	wg   sync.WaitGroup
}

func newJobs() *jobs {
	return &jobs{jobs: make(map[string]*job)}
}

func (js *jobs) status(name string) JobStatus {
	js.lock.Lock()
	defer js.lock.Unlock()
	j, ok := js.jobs[name]
	if !ok {
		return JobStatus{State: stateIdle}
	}
	return j.status()
}

// start moves the project's job to rendering and runs fn in the
// background; fn's error decides between done and failed.
func (js *jobs) start(name string, fn func() error) (JobStatus, error) {
	js.lock.Lock()
	defer js.lock.Unlock()
	j, ok := js.jobs[name]
	if !ok {
		j = newJob()
		js.jobs[name] = j
	}
	if !j.fsm.Can(eventStart) {
		return j.status(), errBusy
	}
	if err := j.fsm.Event(eventStart); err != nil {
		return j.status(), err
	}

	js.wg.Add(1)
	go func() {
		defer js.wg.Done()
		err := fn()

		js.lock.Lock()
		defer js.lock.Unlock()
		if err != nil {
			_ = j.fsm.Event(eventFail, err)
			return
		}
		_ = j.fsm.Event(eventFinish)
	}()

	return j.status(), nil
}

// forget drops the job of a deleted project unless it is still running.
func (js *jobs) forget(name string) error {
	js.lock.Lock()
	defer js.lock.Unlock()
	if j, ok := js.jobs[name]; ok {
		if j.fsm.Is(stateRendering) {
			return errBusy
		}
		delete(js.jobs, name)
	}
	return nil
}

func (js *jobs) wait() {
	js.wg.Wait()
}
