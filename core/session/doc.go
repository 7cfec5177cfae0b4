// Package session defines the per-request session state: a plain,
// string-keyed associative Map supporting get, set, delete, and iteration.
// Each in-flight request owns exactly one Map; the middleware package creates
// it from the inbound cookie and the sessioncodec package serializes it back
// onto the response.
package session
