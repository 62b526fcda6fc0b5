// Package middleware contains cross-cutting pieces of the update loop:
// logging, panic recovery, rate limiting.
package middleware

import (
	"fmt"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
)

// RecoverFromPanic logs and swallows a panic. Deferred at the top of
// every handler goroutine so one broken handler cannot stop delivery of
// subsequent events.
func RecoverFromPanic() {
	if r := recover(); r != nil {
		log.WithFields(log.Fields{
			"component": "panic_recovery",
			"panic":     fmt.Sprintf("%v", r),
			"stack":     string(debug.Stack()),
		}).Error("PANIC in handler — recovered")
	}
}
