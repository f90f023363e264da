package generics

import (
	"fmt"
	"strings"
)

// Code classifies a generic-context failure.
type Code string

const (
	CodeUnregisteredParameter Code = "UnregisteredParameter"
	CodeCircularConstraint    Code = "CircularConstraint"
	CodeInvalidParameterName  Code = "InvalidParameterName"
	CodeDuplicateParameter    Code = "DuplicateParameter"
	CodeMergeConflict         Code = "MergeConflict"
	CodeInvalidMergeStrategy  Code = "InvalidMergeStrategy"
)

// Error is the typed failure returned by Context operations. Compare with
// errors.Is against the Err* sentinels, or errors.As to read the details.
type Error struct {
	Code  Code
	Param string
	// Chain is the dependency path for circular constraints, e.g. [T U T].
	Chain  []string
	Detail string
}

// Sentinels for errors.Is. They match any *Error with the same Code.
var (
	ErrUnregisteredParameter = &Error{Code: CodeUnregisteredParameter}
	ErrCircularConstraint    = &Error{Code: CodeCircularConstraint}
	ErrInvalidParameterName  = &Error{Code: CodeInvalidParameterName}
	ErrDuplicateParameter    = &Error{Code: CodeDuplicateParameter}
	ErrMergeConflict         = &Error{Code: CodeMergeConflict}
	ErrInvalidMergeStrategy  = &Error{Code: CodeInvalidMergeStrategy}
)

func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(string(e.Code))

	if e.Param != "" {
		fmt.Fprintf(&sb, " %q", e.Param)
	}

	if len(e.Chain) > 0 {
		sb.WriteString(": ")
		sb.WriteString(strings.Join(e.Chain, " -> "))
	}

	if e.Detail != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Detail)
	}

	return sb.String()
}

// Is matches sentinels by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Code == e.Code && (t.Param == "" || t.Param == e.Param)
}
