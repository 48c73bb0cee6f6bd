package rest

// Callback receives the outcome of an asynchronous call with a result.
// It is invoked exactly once per dispatched call.
type Callback[T any] func(result T, err error)

// ErrCallback receives the outcome of an asynchronous call that produces
// no result. It is invoked exactly once per dispatched call.
type ErrCallback func(err error)

// Dispatch selects the calling convention for a single operation. Without a
// callback, fn runs synchronously and its outcome is returned to the caller.
// With a callback, the identical fn runs on a new goroutine, the first
// callback receives the outcome and the synchronous return values carry no
// meaning. Local validation never reaches this point; by the time Dispatch
// runs, the only remaining outcome is the transport call itself.
func Dispatch[T any](callbacks []Callback[T], fn func() (T, error)) (T, error) {
	if len(callbacks) == 0 {
		return fn()
	}

	done := callbacks[0]
	go func() {
		done(fn())
	}()

	var zero T
	return zero, nil
}

// DispatchErr is Dispatch for operations without a result value.
func DispatchErr(callbacks []ErrCallback, fn func() error) error {
	if len(callbacks) == 0 {
		return fn()
	}

	done := callbacks[0]
	go func() {
		done(fn())
	}()

	return nil
}
