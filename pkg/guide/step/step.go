package step

import (
	"errors"
	"fmt"
	"strings"
)

// Namespace is the kind of UI element a step points at.
type Namespace string

const (
	NamespaceTab    Namespace = "tab"
	NamespaceButton Namespace = "btn"
	NamespaceCard   Namespace = "card"
	NamespaceItem   Namespace = "item"
	NamespaceAgent  Namespace = "agent" // assistant panel controls, never a deviation
)

var (
	ErrMalformed        = errors.New("malformed step id")
	ErrUnknownNamespace = errors.New("unknown step namespace")
	ErrEmptyPath        = errors.New("guide path is empty")
	ErrDuplicateStep    = errors.New("duplicate step in guide path")
)

// ID identifies a clickable element. Wire form is "<namespace>:<local>".
type ID struct {
	Namespace Namespace
	Local     string
}

func Tab(name string) ID   { return ID{Namespace: NamespaceTab, Local: name} }
func Button(id string) ID  { return ID{Namespace: NamespaceButton, Local: id} }
func Card(id string) ID    { return ID{Namespace: NamespaceCard, Local: id} }
func Item(id string) ID    { return ID{Namespace: NamespaceItem, Local: id} }
func Agent(name string) ID { return ID{Namespace: NamespaceAgent, Local: name} }

func (id ID) String() string {
	return string(id.Namespace) + ":" + id.Local
}

func (id ID) IsZero() bool {
	return id.Namespace == "" && id.Local == ""
}

// IsAgent reports whether the step belongs to the assistant panel itself.
func (id ID) IsAgent() bool {
	return id.Namespace == NamespaceAgent
}

// Parse reads the wire form. The local part may contain spaces and colons
// ("tab:Exam Schedule").
func Parse(raw string) (ID, error) {
	ns, local, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok || ns == "" || local == "" {
		return ID{}, fmt.Errorf("%w: %q", ErrMalformed, raw)
	}
	switch Namespace(ns) {
	case NamespaceTab, NamespaceButton, NamespaceCard, NamespaceItem, NamespaceAgent:
		return ID{Namespace: Namespace(ns), Local: local}, nil
	default:
		return ID{}, fmt.Errorf("%w: %q", ErrUnknownNamespace, ns)
	}
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Path is an ordered sequence of steps leading to a destination.
type Path []ID

// Validate checks that the path is non-empty and has no repeated step.
func (p Path) Validate() error {
	if len(p) == 0 {
		return ErrEmptyPath
	}
	seen := make(map[ID]struct{}, len(p))
	for _, id := range p {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateStep, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Strings returns the wire form of every step.
func (p Path) Strings() []string {
	out := make([]string, len(p))
	for i, id := range p {
		out[i] = id.String()
	}
	return out
}

func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	return out
}
