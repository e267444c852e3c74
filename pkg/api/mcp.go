package api

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hellenika/hoplite/pkg/kit"
	"github.com/hellenika/hoplite/pkg/lint"
)

// RegisterMCPTools registers the linter MCP tools on the server. The
// tools dispatch to the same logged endpoints as the HTTP router.
func RegisterMCPTools(srv *server.MCPServer, svc *Service) {
	eps := newEndpoints(svc)
	registerLintCard(srv, eps.lintCard)
	registerLintBatch(srv, eps.lintBatch)
	registerDeckStats(srv, eps.deckStats)
}

func registerLintCard(srv *server.MCPServer, ep kit.Endpoint) {
	tool := mcp.NewTool("lint_card",
		mcp.WithDescription("Check one Ancient Greek flashcard against the reference deck for duplicates (exact Greek, lemma, or English gloss match)."),
		mcp.WithString("front", mcp.Required(), mcp.Description("Greek front text")),
		mcp.WithString("back", mcp.Description("English gloss")),
		mcp.WithString("tags", mcp.Description("Space-separated tags")),
	)

	kit.RegisterMCPTool(srv, tool, ep, func(req mcp.CallToolRequest) (any, error) {
		args := req.GetArguments()
		front, _ := args["front"].(string)
		back, _ := args["back"].(string)
		tags, _ := args["tags"].(string)
		return &lintCardReq{Card: lint.Candidate{Front: front, Back: back, Tags: tags}}, nil
	})
}

func registerLintBatch(srv *server.MCPServer, ep kit.Endpoint) {
	tool := mcp.NewTool("lint_batch",
		mcp.WithDescription("Check multiple flashcards (up to 500) against the reference deck and against each other for in-batch duplicates."),
		mcp.WithString("fronts", mcp.Required(), mcp.Description("Newline-separated Greek front texts")),
		mcp.WithString("backs", mcp.Description("Newline-separated English glosses, aligned with fronts")),
	)

	kit.RegisterMCPTool(srv, tool, ep, func(req mcp.CallToolRequest) (any, error) {
		args := req.GetArguments()
		frontsStr, _ := args["fronts"].(string)
		backsStr, _ := args["backs"].(string)
		fronts := splitLines(frontsStr)
		backs := splitLines(backsStr)

		cards := make([]lint.Candidate, len(fronts))
		for i, front := range fronts {
			cards[i].Front = front
			if i < len(backs) {
				cards[i].Back = backs[i]
			}
		}
		return &lintBatchReq{Cards: cards}, nil
	})
}

func registerDeckStats(srv *server.MCPServer, ep kit.Endpoint) {
	tool := mcp.NewTool("deck_stats",
		mcp.WithDescription("Report the loaded reference deck index sizes (notes, Greek keys, lemma keys, gloss keys)."),
	)

	kit.RegisterMCPTool(srv, tool, ep, func(_ mcp.CallToolRequest) (any, error) {
		return nil, nil
	})
}

func splitLines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
