package util

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"github.com/Art0r/settings-automation/pkg/errors"
)

// Mocked for unit testing.
var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// HandleFatalError prints err and exits with a non-zero status. Friendly
// errors are printed as is, so that the user doesn't see the wrapped
// context that's only useful for debugging.
func HandleFatalError(err error) {
	if msg, ok := errors.GetFriendlyMessage(err); ok {
		fmt.Fprintln(stderr, msg)
	} else {
		fmt.Fprintf(stderr, "Error: %s\n", err)
	}
	log.WithError(err).Debug("Exiting due to fatal error")
	exit(1)
}

// HandlePanic logs the stack trace of a panic before letting it continue. It
// must be deferred directly.
func HandlePanic() {
	if r := recover(); r != nil {
		log.WithField("stack", string(debug.Stack())).Errorf("Unexpected panic: %v", r)
		panic(r)
	}
}
