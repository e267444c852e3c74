// Package lemma resolves card text to dictionary headwords through a
// pluggable lemmatization backend, with a persistent cache and a manual
// override table in front of it. Backend failures never surface to callers:
// the provider degrades to treating the normalized token as its own lemma.
package lemma

import "fmt"

// Backend resolves a single token to its lemma. Implementations are chosen
// once at construction; there is no runtime capability probing.
type Backend interface {
	// Lemma returns the dictionary form of token, or an error when the
	// backend cannot answer. Callers treat any error as "fall back".
	Lemma(token string) (string, error)
	// Name returns a human-readable identifier for diagnostics.
	Name() string
}

// FallbackName is reported by Provider.BackendName when no backend is
// active and every token lemmatizes to its own normalized form.
const FallbackName = "fallback"

// NewBackend constructs the backend named by kind:
//
//	none   no backend, provider runs in fallback mode
//	golem  in-process golem lemmatizer (English dictionary)
//	http   remote lemmatizer service at url
//
// An unknown kind is an error; a backend whose bounded initialization
// attempt fails is also an error, and the caller decides whether that is
// fatal or just means fallback mode.
func NewBackend(kind, url string) (Backend, error) {
	switch kind {
	case "", "none":
		return nil, nil
	case "golem":
		return newGolemBackend()
	case "http":
		return newHTTPBackend(url)
	default:
		return nil, fmt.Errorf("unknown lemma backend %q", kind)
	}
}
