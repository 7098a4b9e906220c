package http

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
)

// panicError is a value recovered from a panicking handler together with the
// stack it was raised on.
type panicError struct {
	value any
	stack []byte
}

func (e *panicError) Error() string {
	return fmt.Sprintf("%s: %v", ErrPanic, e.value)
}

func (e *panicError) Unwrap() error {
	return ErrPanic
}

// withRecover turns a panic further down the chain into a failure for the
// error responder, which logs it with its stack. It is the outermost stage,
// so it keeps its own [responseWriter] to know whether a response was
// already started.
func (h *Handler) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w}

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if recErr, ok := rec.(error); ok && errors.Is(recErr, http.ErrAbortHandler) {
				panic(rec)
			}

			// the request logger lives in a context this stage never sees
			log := h.traceLogger(w.Header().Get(traceIDHeader))
			r = r.WithContext(log.WithContext(r.Context()))
			h.fail(rw, r, &panicError{value: rec, stack: debug.Stack()})
		}()

		next.ServeHTTP(rw, r)
	})
}
