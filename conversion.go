package typeforge

import "fmt"

// ConversionResult carries the outcome of a single conversion attempt. It
// never holds both a value and an error; OK reports which variant it is.
//
// Results compose without exceptions: Map and Then propagate failures
// unchanged, Recover turns a failure back into a success, and the OrElse
// family extracts terminally. FromTry is the only place a host-level
// failure (error return or panic) is captured into a result.
type ConversionResult[T any] struct {
	value T
	err   error
	ok    bool
}

// Success returns a successful result carrying v.
func Success[T any](v T) ConversionResult[T] {
	return ConversionResult[T]{value: v, ok: true}
}

// Failure returns a failed result carrying err.
func Failure[T any](err error) ConversionResult[T] {
	if err == nil {
		err = fmt.Errorf("conversion failed")
	}
	return ConversionResult[T]{err: err}
}

// Failuref returns a failed result with a formatted message.
func Failuref[T any](format string, args ...any) ConversionResult[T] {
	return ConversionResult[T]{err: fmt.Errorf(format, args...)}
}

// OK reports whether the conversion succeeded.
func (r ConversionResult[T]) OK() bool { return r.ok }

// Value returns the converted value and whether it is present.
func (r ConversionResult[T]) Value() (T, bool) { return r.value, r.ok }

// Err returns the failure cause, or nil for a successful result.
func (r ConversionResult[T]) Err() error {
	if r.ok {
		return nil
	}
	return r.err
}

// Map applies transform to the value of a successful result. A failure
// propagates unchanged and transform is not invoked.
func Map[T, U any](r ConversionResult[T], transform func(T) U) ConversionResult[U] {
	if !r.ok {
		return ConversionResult[U]{err: r.err}
	}
	return Success(transform(r.value))
}

// Then chains a further conversion onto a successful result. A failure
// short-circuits: next is not invoked and the original error propagates.
func Then[T, U any](r ConversionResult[T], next func(T) ConversionResult[U]) ConversionResult[U] {
	if !r.ok {
		return ConversionResult[U]{err: r.err}
	}
	return next(r.value)
}

// Recover turns a failure into a success by invoking handler with the
// failure cause. A successful result passes through unchanged.
func (r ConversionResult[T]) Recover(handler func(error) T) ConversionResult[T] {
	if r.ok {
		return r
	}
	return Success(handler(r.err))
}

// OrElse returns the value, or def when the conversion failed.
func (r ConversionResult[T]) OrElse(def T) T {
	if r.ok {
		return r.value
	}
	return def
}

// OrElseGet returns the value, or the supplier's value when the conversion
// failed. The supplier is only invoked on failure.
func (r ConversionResult[T]) OrElseGet(supply func() T) T {
	if r.ok {
		return r.value
	}
	return supply()
}

// OrError returns the value, or an error built by factory from the failure
// cause. A nil factory returns the stored error as-is.
func (r ConversionResult[T]) OrError(factory func(error) error) (T, error) {
	if r.ok {
		return r.value, nil
	}
	var zero T
	if factory == nil {
		return zero, r.err
	}
	return zero, factory(r.err)
}

// FromTry runs a fallible function and captures its failure as a result
// value. This is the single sanctioned boundary where an error return or a
// panic is converted into a ConversionResult instead of propagating.
func FromTry[T any](fn func() (T, error)) (res ConversionResult[T]) {
	defer func() {
		if p := recover(); p != nil {
			res = Failuref[T]("panic: %v", p)
		}
	}()
	v, err := fn()
	if err != nil {
		return Failure[T](err)
	}
	return Success(v)
}

// String renders the result for diagnostics.
func (r ConversionResult[T]) String() string {
	if r.ok {
		return fmt.Sprintf("successful conversion: %v", r.value)
	}
	return fmt.Sprintf("failed conversion: %v", r.err)
}
