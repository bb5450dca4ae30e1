/*
Package types defines the data structures shared across examcli.

# Exams

Exam mirrors the backend record returned by /api/exams. Only ID and Status are
guaranteed; the remaining fields are rendered when the backend provides them.

Status is a closed set (preparing, prepared). Use ParseStatus at every input
boundary (flags, settings, query strings) so an invalid value never reaches
the view state.

# Requests

CreateExamRequest and UpdateStatusRequest are the JSON bodies sent to the
backend. CreateExamRequest.Validate runs client side before the request is
issued and server side in the mock backend.

# Local state

RecentEntry is one row of the recently viewed store (see package history).
TLSConfig carries the optional transport settings read from config.
*/
package types
