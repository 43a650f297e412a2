package tracker

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// TaskContext carries state data.
type TaskContext struct {
	TaskID string
	Guard  func(taskID string, event string) bool
}

// TaskStateMachine enforces the task lifecycle transitions.
type TaskStateMachine struct {
	interpreter *statekit.Interpreter[TaskContext]
}

// NewTaskStateMachine builds a lifecycle machine starting at initialStatus.
// The optional guard can veto guarded events (start, reopen) based on policy.
func NewTaskStateMachine(initialStatus TaskStatus, taskID string, guard func(string, string) bool) (*TaskStateMachine, error) {
	if guard == nil {
		guard = func(string, string) bool { return true }
	}

	builder := statekit.NewMachine[TaskContext]("task-lifecycle").
		WithInitial(statekit.StateID(initialStatus)).
		WithContext(TaskContext{
			TaskID: taskID,
			Guard:  guard,
		}).
		WithGuard("policyGuard", func(ctx TaskContext, e statekit.Event) bool {
			return ctx.Guard(ctx.TaskID, string(e.Type))
		})

	builder.State(statekit.StateID(StatusPending)).
		On("start").Target(statekit.StateID(StatusInProgress)).Guard("policyGuard").
		On("block").Target(statekit.StateID(StatusBlocked)).
		On("cancel").Target(statekit.StateID(StatusCancelled)).
		Done()

	builder.State(statekit.StateID(StatusInProgress)).
		On("complete").Target(statekit.StateID(StatusDone)).
		On("block").Target(statekit.StateID(StatusBlocked)).
		On("stop").Target(statekit.StateID(StatusPending)).
		On("cancel").Target(statekit.StateID(StatusCancelled)).
		Done()

	builder.State(statekit.StateID(StatusBlocked)).
		On("unblock").Target(statekit.StateID(StatusPending)).
		On("cancel").Target(statekit.StateID(StatusCancelled)).
		Done()

	builder.State(statekit.StateID(StatusDone)).
		On("reopen").Target(statekit.StateID(StatusPending)).Guard("policyGuard").
		Done()

	builder.State(statekit.StateID(StatusCancelled)).
		On("reopen").Target(statekit.StateID(StatusPending)).Guard("policyGuard").
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build state machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &TaskStateMachine{interpreter: interpreter}, nil
}

// Transition attempts to move the task to a new status.
func (sm *TaskStateMachine) Transition(event string) error {
	before := sm.Current()
	sm.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	after := sm.Current()

	if before != after {
		return nil
	}

	// If no transition matches or a guard fails, statekit leaves the state
	// unchanged, so an unchanged state means the event was rejected.
	return fmt.Errorf("the action '%s' is not allowed while the task is '%s'", event, before)
}

// Current returns the status the machine is currently in.
func (sm *TaskStateMachine) Current() TaskStatus {
	return TaskStatus(sm.interpreter.State().Value)
}
