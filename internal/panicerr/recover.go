package panicerr

// Recover runs f in a new goroutine, waiting for it to finish, and turns any
// abnormal exit into a non-nil error return:
//   - a Halt(err) unwinds f and returns err as-is
//   - any other panic is returned as an error carrying the panic value and
//     the goroutine stack
//   - runtime.Goexit is returned as an exit error
func Recover(name string, f func() error) error {
	errch := make(chan error, 1)
	go func() {
		defer close(errch)
		done := false
		defer func() {
			if !done {
				// neither a return nor a panic, only Goexit gets here
				errch <- goexitError{name}
			}
		}()
		defer func() {
			if e := recover(); e != nil {
				errch <- recoveredError(name, e)
				done = true
			}
		}()
		errch <- f()
		done = true
	}()
	return <-errch
}

// Halt unwinds the calling goroutine up to the nearest Recover, which then
// returns err. Halting with a nil error still stops f, but Recover returns
// nil as if f had returned normally.
func Halt(err error) {
	panic(halt{err})
}

type halt struct{ err error }
