// Package http is the REST transport of the remote sync endpoint.
//
// It wires the chi router, the push, pull and roster handlers, and the
// middleware chain in front of them: trace ids, access logging, gzip,
// bearer-token authentication and the batch integrity check. Handlers only
// decode, call the service layer and map its errors to status codes.
package http
