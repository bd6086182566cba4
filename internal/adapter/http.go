package adapter

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-fit-sync/internal/config"
	"github.com/MKhiriev/go-fit-sync/internal/logger"
	"github.com/MKhiriev/go-fit-sync/internal/utils"
	"github.com/MKhiriev/go-fit-sync/models"
)

const (
	pushPath = "/api/sync/push"
	pullPath = "/api/sync/pull"

	// request bodies above this size are gzip-compressed
	gzipThreshold = 4 << 10
)

type httpRemoteEndpoint struct {
	client *utils.HTTPClient
	hasher *utils.Hasher

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPRemoteEndpoint builds the HTTP implementation of [RemoteEndpoint].
// An empty appCfg.HashKey disables batch signing.
func NewHTTPRemoteEndpoint(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (RemoteEndpoint, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	endpoint := &httpRemoteEndpoint{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		logger: logger,
	}
	if appCfg.HashKey != "" {
		endpoint.hasher = utils.NewHasher(appCfg.HashKey)
	}
	endpoint.SetToken(appCfg.AccessToken)

	return endpoint, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpRemoteEndpoint) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpRemoteEndpoint) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// PushBatch signs req.Records when a hash key is configured and POSTs the
// batch to /api/sync/push.
func (h *httpRemoteEndpoint) PushBatch(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	if h.hasher != nil {
		records, err := json.Marshal(req.Records)
		if err != nil {
			return models.PushResponse{}, fmt.Errorf("encode records for hashing: %w", err)
		}
		req.Hash = h.hasher.HexSum(records)
	}

	var result models.PushResponse
	if err := h.post(ctx, pushPath, req, &result); err != nil {
		return models.PushResponse{}, fmt.Errorf("push batch %s: %w", req.PushID, err)
	}

	h.logger.Debug().Str("func", "*httpRemoteEndpoint.PushBatch").
		Str("push_id", req.PushID).
		Int("records", len(req.Records)).
		Int("accepted", len(result.Accepted)).
		Int("conflicts", len(result.Conflicts)).
		Msg("batch pushed")

	return result, nil
}

// PullSince POSTs the cursor to /api/sync/pull.
func (h *httpRemoteEndpoint) PullSince(ctx context.Context, req models.PullRequest) (models.PullResponse, error) {
	var result models.PullResponse
	if err := h.post(ctx, pullPath, req, &result); err != nil {
		return models.PullResponse{}, fmt.Errorf("pull since %d: %w", req.Cursor, err)
	}

	return result, nil
}

func (h *httpRemoteEndpoint) post(ctx context.Context, path string, body any, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetResult(result)

	if len(payload) > gzipThreshold {
		compressed, err := gzipBytes(payload)
		if err != nil {
			return fmt.Errorf("compress request: %w", err)
		}
		req.SetHeader("Content-Encoding", "gzip")
		payload = compressed
	}

	resp, err := req.SetBody(payload).Post(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteEndpoint) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
