package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/mock"
	"github.com/MKhiriev/go-fit-sync/internal/service"
	"github.com/MKhiriev/go-fit-sync/internal/utils"
	"github.com/MKhiriev/go-fit-sync/models"
)

const testToken = "test-token"

type testMocks struct {
	auth    *mock.MockAuthService
	sync    *mock.MockSyncService
	roster  *mock.MockRosterService
	appInfo *mock.MockAppInfoService
}

func newTestHandler(t *testing.T, hashKey string) (*Handler, testMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := testMocks{
		auth:    mock.NewMockAuthService(ctrl),
		sync:    mock.NewMockSyncService(ctrl),
		roster:  mock.NewMockRosterService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
	}
	services := &service.Services{
		AuthService:    m.auth,
		SyncService:    m.sync,
		RosterService:  m.roster,
		AppInfoService: m.appInfo,
	}

	return NewHandler(services, hashKey, 0, logger.Nop()), m
}

// expectIdentity makes testToken authenticate as userID with role.
func (m testMocks) expectIdentity(userID string, role models.Role) {
	m.auth.EXPECT().ParseToken(gomock.Any(), testToken).
		Return(models.Token{UserID: userID, AppRole: role}, nil)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}
