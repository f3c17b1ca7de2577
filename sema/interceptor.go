package sema

import (
	"fmt"

	"github.com/broady/metacxx/ast"
)

// Call describes one semantic action invocation.
type Call struct {
	Action string
	Loc    ast.SourceLocation
}

// ActionFunc runs the next step of an interceptor chain.
type ActionFunc func(call *Call) (res any, err error)

// Interceptor wraps semantic actions. It may inspect the call, invoke next,
// and inspect the result. An action that fails (an invalid result) reports
// an *ActionError; the failure has already been diagnosed.
type Interceptor func(call *Call, next ActionFunc) (res any, err error)

// ActionError reports that an action produced an invalid result.
type ActionError struct {
	Action string
	Loc    ast.SourceLocation
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %s failed", e.Loc, e.Action)
}

// chainInterceptors combines interceptors into one. The first is the
// outer-most.
func chainInterceptors(interceptors []Interceptor) Interceptor {
	if len(interceptors) == 0 {
		return nil
	}
	if len(interceptors) == 1 {
		return interceptors[0]
	}
	return func(call *Call, next ActionFunc) (any, error) {
		chain := next
		for i := len(interceptors) - 1; i >= 0; i-- {
			current, inner := interceptors[i], chain
			chain = func(call *Call) (any, error) {
				return current(call, inner)
			}
		}
		return chain(call)
	}
}

// run executes an action through the interceptor chain. fn reports whether
// the result is valid.
func run[T any](s *Sema, action string, loc ast.SourceLocation, fn func() (T, bool)) T {
	if s.interceptor == nil {
		v, _ := fn()
		return v
	}
	res, _ := s.interceptor(&Call{Action: action, Loc: loc}, func(call *Call) (any, error) {
		v, ok := fn()
		if !ok {
			return v, &ActionError{Action: call.Action, Loc: call.Loc}
		}
		return v, nil
	})
	v, _ := res.(T)
	return v
}
