// Package obslog sets up the process-wide op/go-logging backend and
// carries the panic-recovery helper the rest of the module wraps
// goroutines in.
package obslog

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/op/go-logging"
)

var format = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:.4s} %{module} ▶ %{message}`,
)

// Setup installs a stderr backend at level for the given module name
// and returns its logger. Call once per process (cmd/tagserverd does;
// cmd/tagctl only uses New); packages below obtain their own named logger through
// New, which is safe to call before or after Setup.
func Setup(module string, level logging.Level) *logging.Logger {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
	return logging.MustGetLogger(module)
}

// New returns a named logger against whatever backend the process set
// up with Setup (or go-logging's default, in tests that never call
// Setup). Library packages (server, client) take a *logging.Logger via
// a constructor option defaulting to New(name), rather than holding a
// package-level global.
func New(name string) *logging.Logger {
	return logging.MustGetLogger(name)
}

// RecoverToLog recovers a panic inside f, logging it instead of
// crashing the goroutine that ran it.
func RecoverToLog(f func(), log *logging.Logger) {
	defer func() {
		if x := recover(); x != nil {
			if log != nil {
				log.Error(fmt.Sprintf("run time panic: %v", x))
				log.Error(string(debug.Stack()))
			}
		}
	}()
	f()
}
