package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds returned by store mutations. Match them with errors.Is.
var (
	ErrNotFound              = errors.New("not found")
	ErrDuplicateKey          = errors.New("duplicate key")
	ErrDanglingReference     = errors.New("dangling reference")
	ErrInvalidEnumValue      = errors.New("invalid enum value")
	ErrOutOfRange            = errors.New("out of range")
	ErrDependentRecordsExist = errors.New("dependent records exist")
	ErrMissingField          = errors.New("missing required field")
)

// Error carries the details of a failed mutation. Kind is one of the Err*
// sentinels; the remaining fields are populated when relevant.
type Error struct {
	Kind   error
	Entity EntityType
	ID     string
	// Field names the offending attribute for enum, range and missing-field failures.
	Field string
	Value any
	// Reference is the kind of the parent a dangling key or dependent count points at.
	Reference EntityType
	Count     int
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Entity != "" {
		b.WriteString(string(e.Entity))
		if e.ID != "" {
			fmt.Fprintf(&b, " %s", e.ID)
		}
		b.WriteString(": ")
	}
	switch {
	case errors.Is(e.Kind, ErrNotFound):
		b.WriteString("not found")
	case errors.Is(e.Kind, ErrDuplicateKey):
		b.WriteString("already exists")
	case errors.Is(e.Kind, ErrDanglingReference):
		fmt.Fprintf(&b, "%s references unknown %s %v", e.Field, e.Reference, e.Value)
	case errors.Is(e.Kind, ErrInvalidEnumValue):
		fmt.Fprintf(&b, "invalid %s %q", e.Field, fmt.Sprint(e.Value))
	case errors.Is(e.Kind, ErrOutOfRange):
		fmt.Fprintf(&b, "%s %v out of range", e.Field, e.Value)
	case errors.Is(e.Kind, ErrDependentRecordsExist):
		fmt.Fprintf(&b, "still referenced by %d %s record(s)", e.Count, e.Reference)
	case errors.Is(e.Kind, ErrMissingField):
		fmt.Fprintf(&b, "%s is required", e.Field)
	default:
		if e.Kind != nil {
			b.WriteString(e.Kind.Error())
		}
	}
	return b.String()
}

// Unwrap exposes the sentinel kind.
func (e *Error) Unwrap() error { return e.Kind }

// NotFound builds an ErrNotFound error.
func NotFound(entity EntityType, id string) error {
	return &Error{Kind: ErrNotFound, Entity: entity, ID: id}
}

// DuplicateKey builds an ErrDuplicateKey error.
func DuplicateKey(entity EntityType, id string) error {
	return &Error{Kind: ErrDuplicateKey, Entity: entity, ID: id}
}

// DanglingReference reports that field on entity id points at a missing parent.
func DanglingReference(entity EntityType, id, field string, parent EntityType, parentID string) error {
	return &Error{Kind: ErrDanglingReference, Entity: entity, ID: id, Field: field, Reference: parent, Value: parentID}
}

// InvalidEnum reports an undeclared enum variant.
func InvalidEnum(entity EntityType, id, field string, value any) error {
	return &Error{Kind: ErrInvalidEnumValue, Entity: entity, ID: id, Field: field, Value: value}
}

// OutOfRange reports a numeric field outside its permitted range.
func OutOfRange(entity EntityType, id, field string, value any) error {
	return &Error{Kind: ErrOutOfRange, Entity: entity, ID: id, Field: field, Value: value}
}

// DependentRecordsExist reports that count dependent records still reference id.
func DependentRecordsExist(entity EntityType, id string, dependent EntityType, count int) error {
	return &Error{Kind: ErrDependentRecordsExist, Entity: entity, ID: id, Reference: dependent, Count: count}
}

// MissingField reports an empty required field.
func MissingField(entity EntityType, id, field string) error {
	return &Error{Kind: ErrMissingField, Entity: entity, ID: id, Field: field}
}

// DependentCount extracts the dependent count from an ErrDependentRecordsExist error.
func DependentCount(err error) (int, bool) {
	var de *Error
	if errors.As(err, &de) && errors.Is(de.Kind, ErrDependentRecordsExist) {
		return de.Count, true
	}
	return 0, false
}
