// Package serr defines the error codes of a benchmark run.
package serr

import (
	"errors"
	"fmt"
)

type Terror uint32

const (
	TErrUnknown Terror = iota
	TErrArgs
	TErrOpen
	TErrIO
	TErrClock
	TErrUndefined
)

func (err Terror) String() string {
	switch err {
	case TErrArgs:
		return "bad arguments"
	case TErrOpen:
		return "open failed"
	case TErrIO:
		return "i/o error"
	case TErrClock:
		return "clock went backward"
	case TErrUndefined:
		return "undefined"
	default:
		return "unknown error"
	}
}

type Err struct {
	ErrCode Terror
	Obj     string
	Err     error
}

func MkErr(c Terror, obj interface{}) *Err {
	return &Err{c, fmt.Sprintf("%v", obj), nil}
}

func MkErrError(c Terror, obj interface{}, err error) *Err {
	return &Err{c, fmt.Sprintf("%v", obj), err}
}

func (err *Err) Code() Terror {
	return err.ErrCode
}

func (err *Err) Error() string {
	if err.Err == nil {
		return fmt.Sprintf("%v %v", err.ErrCode, err.Obj)
	}
	return fmt.Sprintf("%v %v: %v", err.ErrCode, err.Obj, err.Err)
}

func (err *Err) Unwrap() error {
	return err.Err
}

func (err *Err) Is(target error) bool {
	if t, ok := target.(*Err); ok {
		return t.ErrCode == err.ErrCode && (t.Obj == "" || t.Obj == err.Obj)
	}
	return false
}

// IsErrCode reports whether some *Err in err's chain carries code c.
func IsErrCode(err error, c Terror) bool {
	var e *Err
	if errors.As(err, &e) {
		return e.ErrCode == c
	}
	return false
}
