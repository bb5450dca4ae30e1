/*
Package api is the HTTP client for the exam backend.

# Endpoints

	GET   /api/exams?status={preparing|prepared}   list, backend order
	GET   /api/exams/{id}                           single exam
	POST  /api/exams                                create (starts as preparing)
	PATCH /api/exams/{id}/status                    move between statuses

# Errors

Every failure returned by Client is a *RequestError and matches
ErrFetchFailed with errors.Is. Callers that render a list only need that one
signal; Kind, Status and the wrapped cause are there for logging and for the
creation dialog, which shows a categorized message.

# Transport

Each request carries an X-Request-ID (uuid) that is also logged, plus an
optional bearer token. Timeouts and TLS/mTLS settings come from config; the
context passed to each call cancels it early, which is how superseded list
fetches are abandoned.
*/
package api
