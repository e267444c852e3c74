package lemma

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/hellenika/hoplite/pkg/greek"
)

// Options configures a Provider. Zero values mean: no backend, no
// persistence, no overrides, empty stop list.
type Options struct {
	// Backend, when non-nil, is used directly and BackendKind is ignored.
	Backend Backend
	// BackendKind selects the lemmatization backend: "none", "golem", "http".
	BackendKind string
	// BackendURL is the service base URL for the http backend.
	BackendURL string
	// CachePath is the persistent cache location (.json or .db/.sqlite).
	CachePath string
	// OverridesPath is the read-only manual correction table.
	OverridesPath string
	// StopwordsPath is the stop word list used by BestLemma.
	StopwordsPath string
	Logger        *slog.Logger
}

// Provider resolves lemmas with override-then-cache-then-backend priority.
// It is an explicit object owned by the caller: construct one, hand it to
// the deck index and the detector, call SaveCache once at the end of the
// run. Cache access is serialized, so per-candidate resolution may be
// parallelized by callers that want to.
type Provider struct {
	backend   Backend
	overrides map[string]string
	stops     *greek.StopList
	store     CacheStore
	logger    *slog.Logger

	mu    sync.Mutex
	cache map[string]string
}

// NewProvider builds a Provider from opts. A backend that fails its
// initialization attempt is logged and permanently disabled for this
// process; a broken overrides table is a configuration error and fails
// construction.
func NewProvider(opts Options) (*Provider, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	overrides, err := LoadOverrides(opts.OverridesPath)
	if err != nil {
		return nil, err
	}

	backend := opts.Backend
	if backend == nil {
		backend, err = NewBackend(opts.BackendKind, opts.BackendURL)
		if err != nil {
			logger.Warn("lemma backend unavailable, running in fallback mode",
				"kind", opts.BackendKind, "error", err)
			backend = nil
		}
	}

	p := &Provider{
		backend:   backend,
		overrides: overrides,
		stops:     greek.NewStopList(opts.StopwordsPath),
		logger:    logger,
		cache:     map[string]string{},
	}

	store, err := OpenCacheStore(opts.CachePath)
	if err != nil {
		logger.Warn("lemma cache unavailable, caching in memory only",
			"path", opts.CachePath, "error", err)
	} else if store != nil {
		p.store = store
		if persisted, err := store.Load(); err != nil {
			logger.Warn("loading lemma cache", "path", opts.CachePath, "error", err)
		} else {
			p.cache = persisted
		}
	}
	return p, nil
}

// BackendName reports which lemmatization capability is active, or
// FallbackName when tokens lemmatize to themselves.
func (p *Provider) BackendName() string {
	if p.backend == nil {
		return FallbackName
	}
	return p.backend.Name()
}

// BestLemma returns the lemma of the most substantive token in text:
// the first token that carries a Greek letter and is not a stop word.
// When no token qualifies, the first token's lemma is used; empty text
// yields the empty string.
func (p *Provider) BestLemma(text string) string {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return ""
	}
	for _, tok := range tokens {
		t := greek.TrimPunct(tok)
		if t == "" || !greek.HasGreekLetter(t) {
			continue
		}
		if p.stops.Contains(t) {
			continue
		}
		return p.LemmatizeToken(t)
	}
	return p.LemmatizeToken(tokens[0])
}

// LemmatizeToken resolves one token. Priority: override table, cache,
// backend; every failure path falls back to the normalized token itself.
// The result is cached in memory; nothing touches the persistent store
// until SaveCache.
func (p *Provider) LemmatizeToken(token string) string {
	if token == "" {
		return ""
	}
	key := greek.NormalizeForMatch(token)
	if key == "" {
		return ""
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if forced, ok := p.overrides[key]; ok {
		lemma := greek.NormalizeForMatch(forced)
		p.cache[key] = lemma
		return lemma
	}
	if lemma, ok := p.cache[key]; ok {
		return lemma
	}
	if p.backend == nil {
		p.cache[key] = key
		return key
	}

	lemma, err := p.backend.Lemma(token)
	if err != nil {
		// Lemmatization failures never abort the pipeline.
		p.logger.Debug("lemma backend error, using normalized token", "token", token, "error", err)
		p.cache[key] = key
		return key
	}
	p.cache[key] = lemma
	return lemma
}

// SaveCache writes the full in-memory cache to the configured store.
// No store means no-op; write failures are logged and swallowed, since
// persistence is best-effort, not a correctness requirement.
func (p *Provider) SaveCache() {
	if p.store == nil {
		return
	}
	p.mu.Lock()
	snapshot := make(map[string]string, len(p.cache))
	for k, v := range p.cache {
		snapshot[k] = v
	}
	p.mu.Unlock()

	if err := p.store.Save(snapshot); err != nil {
		p.logger.Warn("saving lemma cache", "error", err)
	}
}

// Close releases the persistent store, if any.
func (p *Provider) Close() error {
	if p.store == nil {
		return nil
	}
	return p.store.Close()
}

// CacheLen returns the number of cached lemmas, for diagnostics.
func (p *Provider) CacheLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.cache)
}
