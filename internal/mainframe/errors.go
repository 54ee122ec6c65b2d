package mainframe

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	MissingRequiredOption ErrorKind = iota + 1
	InvalidEnumValue
	MalformedPrimitive
	IncompatibleOptionCombination
)

func (k ErrorKind) String() string {
	switch k {
	case MissingRequiredOption:
		return "missing required option"
	case InvalidEnumValue:
		return "invalid enum value"
	case MalformedPrimitive:
		return "malformed primitive"
	case IncompatibleOptionCombination:
		return "incompatible option combination"
	}
	return "unknown option error"
}

// Sentinels for errors.Is.
var (
	ErrMissingRequiredOption = errors.New("missing required option")
	ErrInvalidEnumValue      = errors.New("invalid enum value")
	ErrMalformedPrimitive    = errors.New("malformed primitive")
	ErrIncompatibleOptions   = errors.New("incompatible option combination")
)

// OptionError rejects an option set. Option is the long name of the
// offending option and Reason completes the sentence "--<option> ...".
type OptionError struct {
	Kind   ErrorKind
	Option string
	Reason string
	Err    error
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("--%s %s. %s", e.Option, e.Reason, HelpStr)
}

func (e *OptionError) Unwrap() error {
	return e.Err
}

func (e *OptionError) Is(target error) bool {
	switch target {
	case ErrMissingRequiredOption:
		return e.Kind == MissingRequiredOption
	case ErrInvalidEnumValue:
		return e.Kind == InvalidEnumValue
	case ErrMalformedPrimitive:
		return e.Kind == MalformedPrimitive
	case ErrIncompatibleOptions:
		return e.Kind == IncompatibleOptionCombination
	}
	return false
}

func optionError(kind ErrorKind, option, format string, args ...interface{}) *OptionError {
	return &OptionError{Kind: kind, Option: option, Reason: fmt.Sprintf(format, args...)}
}
