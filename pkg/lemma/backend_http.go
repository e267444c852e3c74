package lemma

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// httpBackend calls a remote lemmatizer service (typically a CLTK wrapper)
// over a narrow contract: GET {base}/lemma?token=... returning
// {"lemma": "..."}. Model loading on the remote side can be slow, so
// availability is probed once at construction with a bounded timeout;
// after that every call is a plain short-timeout request.
type httpBackend struct {
	base   string
	client *http.Client
}

func newHTTPBackend(base string) (Backend, error) {
	if base == "" {
		return nil, fmt.Errorf("http lemma backend requires a url")
	}
	b := &httpBackend{
		base:   base,
		client: &http.Client{Timeout: 10 * time.Second},
	}

	// One bounded initialization attempt. A dead service means fallback
	// mode for the whole run rather than a retry per token.
	probe := &http.Client{Timeout: 30 * time.Second}
	resp, err := probe.Get(base + "/health")
	if err != nil {
		return nil, fmt.Errorf("lemma service unreachable at %s: %w", base, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lemma service health check: HTTP %d", resp.StatusCode)
	}
	return b, nil
}

func (b *httpBackend) Lemma(token string) (string, error) {
	resp, err := b.client.Get(b.base + "/lemma?token=" + url.QueryEscape(token))
	if err != nil {
		return "", fmt.Errorf("lemma request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("lemma request: HTTP %d", resp.StatusCode)
	}

	var body struct {
		Lemma string `json:"lemma"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode lemma response: %w", err)
	}
	if body.Lemma == "" {
		return "", fmt.Errorf("empty lemma for %q", token)
	}
	return body.Lemma, nil
}

func (b *httpBackend) Name() string { return "http:" + b.base }
