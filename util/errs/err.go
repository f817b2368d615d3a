package errs

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
)

const (
	ErrCodeGeneric         string = "XXXX"
	ErrCodeUnknownError    string = "UNKNOWN_ERROR"
	ErrCodeIllegalArgument string = "ILLEGAL_ARGUMENT"
	ErrCodeInvalidPattern  string = "INVALID_PATTERN"
	ErrCodeUnparsableTime  string = "UNPARSABLE_TIME"
	ErrCodeUnknownLocale   string = "UNKNOWN_LOCALE"
	ErrCodeUnknownTimezone string = "UNKNOWN_TIMEZONE"
	ErrCodeNoBackend       string = "NO_BACKEND"
)

var (
	ErrUnknownError    *Err = NewErrfCode(ErrCodeUnknownError, "Unknown Error")
	ErrIllegalArgument *Err = NewErrfCode(ErrCodeIllegalArgument, "Illegal Argument")
	ErrInvalidPattern  *Err = NewErrfCode(ErrCodeInvalidPattern, "Invalid Pattern")
	ErrUnparsableTime  *Err = NewErrfCode(ErrCodeUnparsableTime, "Unparsable Time")
	ErrUnknownLocale   *Err = NewErrfCode(ErrCodeUnknownLocale, "Unknown Locale")
	ErrUnknownTimezone *Err = NewErrfCode(ErrCodeUnknownTimezone, "Unknown Timezone")
	ErrNoBackend       *Err = NewErrfCode(ErrCodeNoBackend, "No Temporal Backend")
)

// Coded error with the stack where it's created.
//
// The sentinels above are never returned as is, WithInternalMsg, Wrap and Wrapf derive a new *Err carrying
// the same code, so errors.Is matches by code:
//
//	err := ErrInvalidPattern.WithInternalMsg("unclosed escape")
//	errors.Is(err, ErrInvalidPattern) // true
type Err struct {
	code        string
	msg         string // safe to show to the caller
	internalMsg string // details for logs
	stack       string
	err         error
}

func (e *Err) Code() string        { return e.code }
func (e *Err) Msg() string         { return e.msg }
func (e *Err) InternalMsg() string { return e.internalMsg }
func (e *Err) Unwrap() error       { return e.err }

func (e *Err) Is(target error) bool {
	te, ok := target.(*Err)
	return ok && e.code != "" && e.code == te.code
}

func (e *Err) Error() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{e.msg, e.internalMsg} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if e.err != nil {
		parts = append(parts, e.err.Error())
	}
	return strings.Join(parts, ", ")
}

// Derive *Err with the same code and message, nil if cause is nil.
func (e *Err) Wrap(cause error) error {
	if cause == nil {
		return nil
	}
	return e.derive(cause, e.internalMsg)
}

// Same as [Err.Wrap], with internal message.
func (e *Err) Wrapf(cause error, internalMsg string, args ...any) error {
	if cause == nil {
		return nil
	}
	return e.derive(cause, sprintf(internalMsg, args))
}

// Derive *Err with the same code and message.
func (e *Err) WithInternalMsg(msg string, args ...any) *Err {
	return e.derive(e.err, sprintf(msg, args))
}

func (e *Err) derive(cause error, internalMsg string) *Err {
	return &Err{code: e.code, msg: e.msg, internalMsg: internalMsg, err: cause, stack: stack(4)}
}

// Create new *Err with message and error code.
func NewErrfCode(code string, msg string, args ...any) *Err {
	return &Err{code: code, msg: sprintf(msg, args), stack: stack(3)}
}

// Wrap err with stack, err is returned as is if it's already *Err or nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	if me, ok := err.(*Err); ok {
		return me
	}
	return &Err{err: err, stack: stack(3)}
}

// Wrap err with message, nil if err is nil.
func WrapErrf(err error, msg string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Err{msg: sprintf(msg, args), err: err, stack: stack(3)}
}

// Equivalent to ErrUnknownError.Wrapf(..), nil if err is nil.
func UnknownErrf(err error, msg string, args ...any) error {
	return ErrUnknownError.Wrapf(err, msg, args...)
}

// Code carried by the first coded *Err in the chain, "" if there is none.
func CodeOf(err error) string {
	for err != nil {
		if me, ok := err.(*Err); ok && me != nil && me.code != "" {
			return me.code
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// Error message followed by the stack of the innermost *Err in the chain.
func ErrorStackTrace(err error) string {
	if err == nil {
		return "nil"
	}
	var st string
	for ue := err; ue != nil; ue = errors.Unwrap(ue) {
		if me, ok := ue.(*Err); ok && me != nil {
			st = me.stack
		}
	}
	return err.Error() + st
}

func sprintf(msg string, args []any) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

var stackPool = sync.Pool{
	New: func() any {
		v := make([]uintptr, 50)
		return &v
	},
}

func stack(skip int) string {
	pcs := stackPool.Get().(*[]uintptr)
	defer stackPool.Put(pcs)

	n := runtime.Callers(skip, *pcs)
	frames := runtime.CallersFrames((*pcs)[:n])
	var b strings.Builder
	for {
		f, more := frames.Next()
		if f.Function == "" {
			break
		}
		fmt.Fprintf(&b, "\n\t%v\n\t\t%v:%v", f.Function, f.File, f.Line)
		if !more {
			break
		}
	}
	return b.String()
}
