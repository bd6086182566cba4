// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// responseData is a snapshot of a finished response.
type responseData struct {
	status int
	size   int
	// body is the payload of the last Write call only.
	body []byte
}

// responseWriter records the status, size and last body chunk of a
// response for the access log. WriteHeader reaches the wrapped writer at
// most once.
type responseWriter struct {
	http.ResponseWriter

	status      int
	wroteHeader bool
	size        int
	body        []byte
}

func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	w.body = b
	return n, err
}

// data returns the recorded response. A handler that wrote nothing
// answered 200.
func (w *responseWriter) data() responseData {
	status := w.status
	if !w.wroteHeader {
		status = http.StatusOK
	}
	return responseData{status: status, size: w.size, body: w.body}
}
