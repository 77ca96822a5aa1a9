package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// FetchResult is the uniform outcome of a network call. OK mirrors the
// HTTP success range; Status is 0 when the request never reached the
// server. Text is the body read once; Data is the opportunistic JSON
// parse of that body, nil when the body is not valid JSON.
type FetchResult struct {
	OK     bool
	Status int
	Data   any
	Text   string
}

// Fetch performs an HTTP request and normalizes every failure except
// caller cancellation into a non-OK FetchResult. Callers must check
// OK/Data rather than rely on an error return: the only error this
// function ever returns is the context's, so a non-nil error always
// means the caller cancelled.
func Fetch(ctx context.Context, client *http.Client, method, url string, headers map[string]string, body []byte) (FetchResult, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		if ctx.Err() != nil {
			return FetchResult{}, ctx.Err()
		}
		// Malformed URL; degrade like any other unreachable endpoint.
		return FetchResult{OK: false, Status: 0}, nil
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return FetchResult{}, ctx.Err()
		}
		return FetchResult{OK: false, Status: 0}, nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return FetchResult{}, ctx.Err()
		}
		return FetchResult{OK: false, Status: resp.StatusCode}, nil
	}

	result := FetchResult{
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status: resp.StatusCode,
		Text:   string(raw),
	}

	// Opportunistic parse; a non-JSON body just leaves Data nil.
	var data any
	if err := json.Unmarshal(raw, &data); err == nil {
		result.Data = data
	}

	return result, nil
}
