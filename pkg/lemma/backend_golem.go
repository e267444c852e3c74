package lemma

import (
	"fmt"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// golemBackend wraps the in-process golem lemmatizer. Golem ships no
// Ancient Greek dictionary, so this backend serves the English gloss side
// and Latin-script tokens; Greek decks normally pair it with overrides or
// run the http backend instead.
type golemBackend struct {
	lem *golem.Lemmatizer
}

func newGolemBackend() (Backend, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("init golem lemmatizer: %w", err)
	}
	return &golemBackend{lem: lem}, nil
}

func (b *golemBackend) Lemma(token string) (string, error) {
	out := b.lem.Lemma(strings.ToLower(token))
	if out == "" {
		return "", fmt.Errorf("golem: no lemma for %q", token)
	}
	return out, nil
}

func (b *golemBackend) Name() string { return "golem-en" }
