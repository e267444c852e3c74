package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/hellenika/hoplite/pkg/kit"
	"github.com/hellenika/hoplite/pkg/lint"
)

// NewRouter returns an http.Handler with all linter API routes.
func NewRouter(svc *Service) http.Handler {
	mux := http.NewServeMux()
	h := &handler{endpoints: newEndpoints(svc)}

	mux.HandleFunc("GET /v1/lint/batch", methodNotAllowed) // prevent GET on batch
	mux.HandleFunc("POST /v1/lint/batch", h.handleLintBatch)
	mux.HandleFunc("GET /v1/lint/{front}", h.handleLintCard)
	mux.HandleFunc("GET /v1/deck", h.handleDeckStats)
	mux.HandleFunc("GET /v1/health", h.handleHealth)

	return cors(requestContext(mux))
}

type handler struct {
	endpoints
}

// --- lint single card ---

func (h *handler) handleLintCard(w http.ResponseWriter, r *http.Request) {
	front := r.PathValue("front")
	if front == "" {
		writeError(w, http.StatusBadRequest, "missing front text")
		return
	}

	resp, err := h.lintCard(r.Context(), &lintCardReq{
		Card: lint.Candidate{
			Front: front,
			Back:  r.URL.Query().Get("back"),
			Tags:  r.URL.Query().Get("tags"),
		},
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- lint batch ---

type httpBatchRequest struct {
	Cards []lint.Candidate `json:"cards"`
}

func (h *handler) handleLintBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MiB max
	var req httpBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	resp, err := h.lintBatch(r.Context(), &lintBatchReq{Cards: req.Cards})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- deck stats ---

func (h *handler) handleDeckStats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.deckStats(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// --- health ---

type healthResponse struct {
	Status string `json:"status"`
	Notes  int    `json:"notes"`
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp, err := h.deckStats(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Notes:  resp.(statsResponse).Deck.Notes,
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// requestContext stamps each request with its transport and a fresh
// request id so the endpoint logging middleware can correlate entries.
func requestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := kit.WithTransport(r.Context(), "http")
		ctx = kit.WithRequestID(ctx, uuid.NewString())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
