package descriptor

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/owloop/pkg/types"
)

// Action is what a MappingIntent records.
type Action string

// Intent actions.
const (
	ActionAdded              Action = "added"
	ActionRemoved            Action = "removed"
	ActionSingletonViolation Action = "singleton_violation"
)

// Phase is the synchronization step that produced an intent.
type Phase string

// Intent phases.
const (
	PhaseRead     Phase = "read"
	PhaseWrite    Phase = "write"
	PhaseRollback Phase = "rollback"
)

// MappingIntent records one synchronization action. Intents are values and
// are returned in the order the actions happened.
type MappingIntent struct {
	Action    Action          `json:"action"`
	Phase     Phase           `json:"phase"`
	Subject   types.Entity    `json:"subject"`
	Predicate types.AxiomKind `json:"predicate"`
	Object    types.Object    `json:"object,omitzero"`
	Detail    string          `json:"detail,omitempty"`
	Time      time.Time       `json:"time"`
}

func newIntent(phase Phase, action Action, subject types.Entity, kind types.AxiomKind, obj types.Object) MappingIntent {
	return MappingIntent{
		Action:    action,
		Phase:     phase,
		Subject:   subject,
		Predicate: kind,
		Object:    obj,
		Time:      time.Now(),
	}
}

func (m MappingIntent) String() string {
	s := fmt.Sprintf("%s %s %s %s %s", m.Phase, m.Action, m.Subject, m.Predicate, m.Object)
	if m.Detail != "" {
		s += " (" + m.Detail + ")"
	}
	return s
}

// Summary counts intents by action.
type Summary struct {
	Added               int
	Removed             int
	SingletonViolations int
	// RolledBack counts intents produced while reverting a write.
	RolledBack int
}

// Summarize counts intents by action.
func Summarize(intents []MappingIntent) Summary {
	var s Summary
	for _, m := range intents {
		if m.Phase == PhaseRollback {
			s.RolledBack++
		}
		switch m.Action {
		case ActionAdded:
			s.Added++
		case ActionRemoved:
			s.Removed++
		case ActionSingletonViolation:
			s.SingletonViolations++
		}
	}
	return s
}
