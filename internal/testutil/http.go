package testutil

import (
	"bytes"
	"io"
	"net/http"
	"testing"
	"time"
)

// PostJSON sends a POST with a JSON payload and returns the status code and
// raw body. Error statuses are returned, not fatal, so tests can assert the
// error contract.
func PostJSON(t testing.TB, url string, payload []byte) (int, []byte) {
	t.Helper()
	return doRequest(t, http.MethodPost, url, payload)
}

// Get sends a GET request and returns the status code and raw body.
func Get(t testing.TB, url string) (int, []byte) {
	t.Helper()
	return doRequest(t, http.MethodGet, url, nil)
}

func doRequest(t testing.TB, method, url string, payload []byte) (int, []byte) {
	t.Helper()
	ctx := Context(t, 10*time.Second)
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("http request: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, body
}
