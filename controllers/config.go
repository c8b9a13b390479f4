// Package controllers exposes the store, scoring, lifecycle, aggregator, and
// display operations over an HTTP/JSON surface that the operator, judge, and
// scoreboard views poll.
// File: controllers/config.go
package controllers

// applicationURL is the externally reachable base URL, used to build share
// links and QR codes.
var applicationURL = "http://localhost:8080"

// SetConfig passes deployment configuration to the controllers.
func SetConfig(appURL string) {
	if appURL != "" {
		applicationURL = appURL
	}
}
