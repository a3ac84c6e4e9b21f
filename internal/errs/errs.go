// Package errs defines the categorized error taxonomy every stage of the
// configuration-generation pipeline returns instead of panicking.
package errs

import "fmt"

// Kind identifies which of the documented failure categories an Error
// belongs to. Callers pattern-match on Kind rather than on error strings.
type Kind int

const (
	// InvalidTopology covers unknown ids, duplicate device names, and
	// edges whose endpoints do not exist.
	InvalidTopology Kind = iota
	// InvalidVlan covers illegal prefixes and more than one native VLAN.
	InvalidVlan
	// InterfaceConflict covers duplicate interface bindings on one device
	// and EtherChannel range collisions.
	InterfaceConflict
	// AddressExhausted covers allocator failures against the base block.
	AddressExhausted
	// PhysicalModelMissing covers physical mode devices lacking a model.
	PhysicalModelMissing
	// ConfigBuildFailure covers internally inconsistent plans — a bug.
	ConfigBuildFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidTopology:
		return "InvalidTopology"
	case InvalidVlan:
		return "InvalidVlan"
	case InterfaceConflict:
		return "InterfaceConflict"
	case AddressExhausted:
		return "AddressExhausted"
	case PhysicalModelMissing:
		return "PhysicalModelMissing"
	case ConfigBuildFailure:
		return "ConfigBuildFailure"
	default:
		return "Unknown"
	}
}

// Error is the single error type every pipeline stage returns. Entity names
// the offending device, link, or VLAN by its label so the collaborator
// layer can surface a precise diagnostic.
type Error struct {
	Kind    Kind
	Entity  string
	Message string
}

func (e *Error) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Entity, e.Message)
}

// Is lets errors.Is match on Kind alone, so a caller can write
// errors.Is(err, errs.New(errs.AddressExhausted, "", "")) to test category.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an Error of the given kind.
func New(kind Kind, entity, message string) *Error {
	return &Error{Kind: kind, Entity: entity, Message: message}
}

func Newf(kind Kind, entity, format string, args ...any) *Error {
	return New(kind, entity, fmt.Sprintf(format, args...))
}
