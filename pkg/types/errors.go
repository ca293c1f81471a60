package types

import (
	"errors"
	"fmt"
	"strings"
)

// Synchronization errors.
var (
	ErrUnboundGround    = errors.New("ground is not bound to an entity")
	ErrInconsistent     = errors.New("ontology is inconsistent")
	ErrUnresolvedEntity = errors.New("entity cannot be resolved")
	ErrNotBuildable     = errors.New("capability values do not name entities")
)

// Entity and value errors.
var (
	ErrInvalidKind  = errors.New("invalid entity kind")
	ErrInvalidName  = errors.New("invalid name")
	ErrInvalidValue = errors.New("invalid axiom value")
	ErrKindMismatch = errors.New("axiom kind does not apply to subject")
)

// Store and registry errors.
var (
	ErrNotFound       = errors.New("not found")
	ErrStoreDetached  = errors.New("store is detached")
	ErrAlreadyOpen    = errors.New("store is already open")
	ErrDuplicateName  = errors.New("ontology name already registered with a different config")
	ErrInvalidFixture = errors.New("invalid fixture")
)

// Violation describes one reason the reasoner found the ontology
// inconsistent.
type Violation struct {
	Rule    string   `json:"rule"`
	Subject Entity   `json:"subject"`
	Related []Entity `json:"related,omitempty"`
	Detail  string   `json:"detail,omitempty"`
}

func (v Violation) String() string {
	var b strings.Builder
	b.WriteString(v.Rule)
	b.WriteString(" ")
	b.WriteString(v.Subject.String())
	for _, r := range v.Related {
		b.WriteString(" ")
		b.WriteString(r.String())
	}
	if v.Detail != "" {
		b.WriteString(": ")
		b.WriteString(v.Detail)
	}
	return b.String()
}

// InconsistencyError carries the violations behind an ErrInconsistent.
// errors.Is(err, ErrInconsistent) holds for every *InconsistencyError.
type InconsistencyError struct {
	Violations []Violation
}

func (e *InconsistencyError) Error() string {
	if len(e.Violations) == 0 {
		return ErrInconsistent.Error()
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s: %s", ErrInconsistent, strings.Join(parts, "; "))
}

func (e *InconsistencyError) Unwrap() error { return ErrInconsistent }
