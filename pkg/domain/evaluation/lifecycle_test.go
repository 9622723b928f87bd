package evaluation_test

import (
	"testing"

	"github.com/felixgeelhaar/stackaudit/pkg/domain/evaluation"
)

func TestLifecycle_HappyPath(t *testing.T) {
	l, err := evaluation.NewLifecycle("/tmp/project")
	if err != nil {
		t.Fatalf("new lifecycle: %v", err)
	}
	if l.Phase() != evaluation.PhasePending {
		t.Fatalf("expected pending, got %s", l.Phase())
	}

	steps := []struct {
		event string
		phase string
	}{
		{evaluation.EventInspect, evaluation.PhaseInspecting},
		{evaluation.EventAnalyze, evaluation.PhaseAnalyzing},
		{evaluation.EventReport, evaluation.PhaseReporting},
		{evaluation.EventComplete, evaluation.PhaseCompleted},
		{evaluation.EventReset, evaluation.PhasePending},
	}
	for _, s := range steps {
		if err := l.Advance(s.event); err != nil {
			t.Fatalf("advance %s: %v", s.event, err)
		}
		if l.Phase() != s.phase {
			t.Fatalf("after %s expected %s, got %s", s.event, s.phase, l.Phase())
		}
	}
}

func TestLifecycle_RejectsOutOfOrder(t *testing.T) {
	l, err := evaluation.NewLifecycle("/tmp/project")
	if err != nil {
		t.Fatalf("new lifecycle: %v", err)
	}

	if err := l.Advance(evaluation.EventReport); err == nil {
		t.Error("report before inspect should fail")
	}
	if l.Phase() != evaluation.PhasePending {
		t.Errorf("phase should not change, got %s", l.Phase())
	}
}
