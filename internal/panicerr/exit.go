package panicerr

import (
	"errors"
	"fmt"
)

// goexitError reports that the goroutine running a Recover function was
// unwound by runtime.Goexit, which leaves no panic value to recover.
type goexitError struct{ name string }

func (ge goexitError) Error() string {
	if ge.name == "" {
		return "runtime.Goexit called"
	}
	return fmt.Sprintf("%v called runtime.Goexit", ge.name)
}

// IsExit returns true if err indicates a recovered goroutine exit.
func IsExit(err error) bool {
	return errors.As(err, new(goexitError))
}
