package api

import (
	"context"
	"fmt"

	"github.com/hellenika/hoplite/pkg/deck"
	"github.com/hellenika/hoplite/pkg/kit"
	"github.com/hellenika/hoplite/pkg/lint"
)

// maxBatch bounds one batch request; larger decks go through the CLI.
const maxBatch = 500

// Shared request/response types used by both HTTP and MCP transports.

type lintCardReq struct {
	Card lint.Candidate
}

type lintBatchReq struct {
	Cards []lint.Candidate
}

type batchResponse struct {
	Results []*lint.Result `json:"results"`
}

type statsResponse struct {
	Deck deck.Stats `json:"deck"`
}

// endpoints is the full wrapped endpoint set shared by the HTTP router
// and the MCP tools; every invocation goes through the logging middleware.
type endpoints struct {
	lintCard  kit.Endpoint
	lintBatch kit.Endpoint
	deckStats kit.Endpoint
}

func newEndpoints(svc *Service) endpoints {
	wrap := func(name string, ep kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.Logging(svc.logger, name))(ep)
	}
	return endpoints{
		lintCard:  wrap("lint_card", lintCardEndpoint(svc)),
		lintBatch: wrap("lint_batch", lintBatchEndpoint(svc)),
		deckStats: wrap("deck_stats", deckStatsEndpoint(svc)),
	}
}

func lintCardEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*lintCardReq)
		return svc.LintCard(req.Card), nil
	}
}

func lintBatchEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*lintBatchReq)
		if len(req.Cards) == 0 {
			return nil, fmt.Errorf("cards array is empty")
		}
		if len(req.Cards) > maxBatch {
			return nil, fmt.Errorf("too many cards (max %d, got %d)", maxBatch, len(req.Cards))
		}
		return batchResponse{Results: svc.LintBatch(req.Cards)}, nil
	}
}

func deckStatsEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return statsResponse{Deck: svc.Stats()}, nil
	}
}
