package doupinpin

import "log"

// Logf is the logging function used for library diagnostics such as the
// palette load summary and per-pattern timing. It defaults to
// log.Printf and can be replaced or silenced with SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the library's logging function. Passing nil
// disables logging.
func SetLogger(fn func(format string, v ...interface{})) {
	if fn == nil {
		fn = func(string, ...interface{}) {}
	}
	Logf = fn
}
