package common

import (
	"fmt"
	"runtime/debug"
)

func HandlePanic() {
	if r := recover(); r != nil {
		Logger.Sugar().Errorf("catch panic: %v \n stack: %s", r, string(debug.Stack()))
	}
}

// RecoverError converts a panic into *err so a worker goroutine can report it.
func RecoverError(err *error) {
	if r := recover(); r != nil {
		Logger.Sugar().Errorf("catch panic: %v \n stack: %s", r, string(debug.Stack()))
		*err = fmt.Errorf("panic: %v", r)
	}
}
