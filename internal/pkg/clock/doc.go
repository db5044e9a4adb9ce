// Package clock provides a tiny time abstraction.
//
// Business code depends on Clocker instead of calling time.Now directly, so
// expiry rules can be tested at exact instants with the Manual clock.
package clock
