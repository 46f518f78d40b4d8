// Package monitoring carries the shared diagnostic logger.
package monitoring

import "log"

// Logf is the package-level progress logger. It defaults to log.Printf and
// may be replaced with SetLogger; the -quiet flag mutes it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil installs a no-op
// logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
