package eventloop

import (
	"fmt"
	"time"
)

type flowKind int

const (
	flowPoll flowKind = iota
	flowWait
	flowWaitUntil
	flowExit
)

// ControlFlow tells the loop what to do once the current iteration
// has finished. Once it has been set to exit, it can't be changed
// again.
type ControlFlow struct {
	kind     flowKind
	deadline time.Time
	code     int
}

var (
	// Poll starts the next iteration as soon as the current one is
	// done, whether or not there are new events.
	Poll = ControlFlow{kind: flowPoll}

	// Wait blocks until new events arrive.
	Wait = ControlFlow{kind: flowWait}
)

// WaitUntil blocks until new events arrive or deadline passes,
// whichever happens first.
func WaitUntil(deadline time.Time) ControlFlow {
	return ControlFlow{kind: flowWaitUntil, deadline: deadline}
}

// ExitWithCode stops the loop, causing Run to return code.
func ExitWithCode(code int) ControlFlow {
	return ControlFlow{kind: flowExit, code: code}
}

// Exiting returns the exit code if cf is an exit.
func (cf ControlFlow) Exiting() (int, bool) {
	return cf.code, cf.kind == flowExit
}

// Deadline returns the deadline of a WaitUntil.
func (cf ControlFlow) Deadline() (time.Time, bool) {
	return cf.deadline, cf.kind == flowWaitUntil
}

func (cf ControlFlow) String() string {
	switch cf.kind {
	case flowPoll:
		return "Poll"
	case flowWait:
		return "Wait"
	case flowWaitUntil:
		return fmt.Sprintf("WaitUntil(%v)", cf.deadline.Format(time.StampMilli))
	case flowExit:
		return fmt.Sprintf("ExitWithCode(%v)", cf.code)
	}
	return fmt.Sprintf("ControlFlow(%d)", int(cf.kind))
}

type CauseKind int

const (
	// Init is the cause of the first iteration.
	Init CauseKind = iota

	// StartPoll is the cause of iterations that followed a Poll.
	StartPoll

	// WaitCancelled means that events arrived before the wait ran
	// out.
	WaitCancelled

	// ResumeTimeReached means that a WaitUntil deadline passed.
	ResumeTimeReached
)

func (k CauseKind) String() string {
	switch k {
	case Init:
		return "Init"
	case StartPoll:
		return "Poll"
	case WaitCancelled:
		return "WaitCancelled"
	case ResumeTimeReached:
		return "ResumeTimeReached"
	}
	return fmt.Sprintf("CauseKind(%d)", int(k))
}

// StartCause is the reason that an iteration of the loop started.
type StartCause struct {
	Kind CauseKind

	// Start is when the loop began waiting.
	Start time.Time

	// Requested is the deadline that was asked for, if the loop was
	// waiting for one.
	Requested time.Time
}
