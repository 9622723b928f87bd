package evaluation

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Run lifecycle states.
const (
	PhasePending    = "pending"
	PhaseInspecting = "inspecting"
	PhaseAnalyzing  = "analyzing"
	PhaseReporting  = "reporting"
	PhaseCompleted  = "completed"
)

// Run lifecycle events.
const (
	EventInspect  = "inspect"
	EventAnalyze  = "analyze"
	EventReport   = "report"
	EventComplete = "complete"
	EventReset    = "reset"
)

// LifecycleContext carries the run identity through the state machine.
type LifecycleContext struct {
	ProjectPath string
}

// Lifecycle enforces the order of a run: every inspector finishes before the
// gap analysis, and the record is only reported once it is complete.
type Lifecycle struct {
	interpreter *statekit.Interpreter[LifecycleContext]
}

// NewLifecycle creates a started run lifecycle in the pending phase.
func NewLifecycle(projectPath string) (*Lifecycle, error) {
	builder := statekit.NewMachine[LifecycleContext]("evaluation-run").
		WithInitial(statekit.StateID(PhasePending)).
		WithContext(LifecycleContext{ProjectPath: projectPath})

	builder.State(PhasePending).
		On(EventInspect).Target(PhaseInspecting).
		Done()

	builder.State(PhaseInspecting).
		On(EventAnalyze).Target(PhaseAnalyzing).
		Done()

	builder.State(PhaseAnalyzing).
		On(EventReport).Target(PhaseReporting).
		Done()

	builder.State(PhaseReporting).
		On(EventComplete).Target(PhaseCompleted).
		Done()

	builder.State(PhaseCompleted).
		On(EventReset).Target(PhasePending).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build run lifecycle: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &Lifecycle{interpreter: interpreter}, nil
}

// Advance sends event and fails when the current phase does not accept it.
func (l *Lifecycle) Advance(event string) error {
	before := l.Phase()
	l.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
	if l.Phase() != before {
		return nil
	}
	return fmt.Errorf("event '%s' is not allowed while the run is '%s'", event, before)
}

// Phase returns the current phase name.
func (l *Lifecycle) Phase() string {
	return string(l.interpreter.State().Value)
}
