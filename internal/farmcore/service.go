// Package farmcore is the typed client for the farm records store, a
// Supabase PostgREST API. Every table read and write of the bot goes
// through it.
package farmcore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"FarmBot/internal/lib/sl"
)

type Service struct {
	BaseURL string
	ApiKey  string
	Log     *slog.Logger

	client *http.Client
}

func New(baseURL, apiKey string, timeout time.Duration, log *slog.Logger) *Service {
	return &Service{
		BaseURL: baseURL,
		ApiKey:  apiKey,
		Log:     log.With(sl.Module("farmcore")),
		client:  &http.Client{Timeout: timeout},
	}
}

// request performs one PostgREST call. Writes ask for the inserted or
// patched rows back (Prefer: return=representation) so callers never
// need a second round trip. out, when non-nil, receives the decoded
// response body.
func (s *Service) request(ctx context.Context, method, table string, params url.Values, body, out any) error {
	op := method + " " + table

	endpoint := fmt.Sprintf("%s/rest/v1/%s", s.BaseURL, table)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("apikey", s.ApiKey)
	req.Header.Set("Authorization", "Bearer "+s.ApiKey)
	req.Header.Set("Content-Type", "application/json")
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Op: op, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		s.Log.With(
			slog.String("op", op),
			slog.Int("status", resp.StatusCode),
			slog.String("body", truncate(data, 300)),
		).Error("records api request failed")
		return &RequestError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("%s", truncate(data, 300))}
	}

	s.Log.With(
		slog.String("op", op),
		slog.Int("status", resp.StatusCode),
	).Debug("records api request")

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return nil
}

func (s *Service) get(ctx context.Context, table string, params url.Values, out any) error {
	return s.request(ctx, http.MethodGet, table, params, nil, out)
}

func (s *Service) post(ctx context.Context, table string, body, out any) error {
	return s.request(ctx, http.MethodPost, table, nil, body, out)
}

func (s *Service) patch(ctx context.Context, table string, params url.Values, body, out any) error {
	return s.request(ctx, http.MethodPatch, table, params, body, out)
}

func (s *Service) delete(ctx context.Context, table string, params url.Values, out any) error {
	return s.request(ctx, http.MethodDelete, table, params, nil, out)
}

func truncate(data []byte, n int) string {
	if len(data) > n {
		return string(data[:n]) + "..."
	}
	return string(data)
}

func eq(v string) string {
	return "eq." + v
}
