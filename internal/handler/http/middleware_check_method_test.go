package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckHTTPMethod(t *testing.T) {
	h, _ := newTestHandler(t, "")
	router := h.Init()

	tests := []struct {
		method     string
		path       string
		wantStatus int
		wantAllow  string
	}{
		{http.MethodGet, "/api/sync/push", http.StatusMethodNotAllowed, "POST"},
		{http.MethodDelete, "/api/roster/a1", http.StatusMethodNotAllowed, "PUT"},
		{http.MethodPost, "/api/version/", http.StatusMethodNotAllowed, "GET"},
		{http.MethodGet, "/api/unknown", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllow, rec.Header().Get("Allow"))
		})
	}
}
