// Package transport exposes the insight-compatible JSON HTTP surface.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/alexenglish/insight-api-komodo/internal/insight"
	"github.com/alexenglish/insight-api-komodo/internal/model"
	"github.com/alexenglish/insight-api-komodo/internal/registry"
	"github.com/alexenglish/insight-api-komodo/internal/verusd"
	"github.com/alexenglish/insight-api-komodo/pkg/safe"
)

const txsPerPage = 10

type (
	// TransactionService serves transformed transactions.
	TransactionService interface {
		TransactionByID(ctx context.Context, txid string, opts insight.Options) (*model.TransformedTransaction, error)
		BlockTransactions(ctx context.Context, blockHash string, opts insight.Options) ([]*model.TransformedTransaction, error)
	}

	// StatusSource serves node status and address balances.
	StatusSource interface {
		Info(ctx context.Context) (*model.NodeInfo, error)
		ChainHeight(ctx context.Context) (int64, error)
		AddressBalance(ctx context.Context, address string) (*model.AddressBalance, error)
	}
)

// Handler wires the API routes.
type Handler struct {
	txs      TransactionService
	status   StatusSource
	registry *registry.Registry
	logger   *zap.Logger
}

// NewHandler constructs the API handler.
func NewHandler(txs TransactionService, status StatusSource, reg *registry.Registry, logger *zap.Logger) *Handler {
	return &Handler{
		txs:      txs,
		status:   status,
		registry: reg,
		logger:   logger,
	}
}

// Register adds the API routes to a mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/tx/{txid}", h.handleTransaction)
	mux.HandleFunc("GET /api/txs", h.handleBlockTransactions)
	mux.HandleFunc("GET /api/status", h.handleStatus)
	mux.HandleFunc("GET /api/sync", h.handleSync)
	mux.HandleFunc("GET /api/addr/{address}", h.handleAddress)
}

func (h *Handler) handleTransaction(w http.ResponseWriter, r *http.Request) {
	txid := r.PathValue("txid")
	tx, err := h.txs.TransactionByID(r.Context(), txid, optionsFromQuery(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, tx)
}

func (h *Handler) handleBlockTransactions(w http.ResponseWriter, r *http.Request) {
	blockHash := r.URL.Query().Get("block")
	if blockHash == "" {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "block parameter is required"})
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid pageNum"})
		return
	}

	txs, err := h.txs.BlockTransactions(r.Context(), blockHash, optionsFromQuery(r))
	if err != nil {
		h.writeError(w, err)
		return
	}

	pagesTotal := (len(txs) + txsPerPage - 1) / txsPerPage
	if pagesTotal == 0 {
		pagesTotal = 1
	}
	start := int(page) * txsPerPage
	if start > len(txs) {
		start = len(txs)
	}
	end := start + txsPerPage
	if end > len(txs) {
		end = len(txs)
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"pagesTotal": pagesTotal,
		"txs":        txs[start:end],
	})
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	info, err := h.status.Info(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"info": info})
}

func (h *Handler) handleSync(w http.ResponseWriter, r *http.Request) {
	height, err := h.status.ChainHeight(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":           "finished",
		"blockChainHeight": height,
		"height":           height,
		"error":            nil,
		"type":             "verusd",
	})
}

func (h *Handler) handleAddress(w http.ResponseWriter, r *http.Request) {
	address := r.PathValue("address")
	if h.registry.IsBlocked(address) {
		h.writeJSON(w, http.StatusForbidden, errorBody{Error: "address is not available"})
		return
	}
	balance, err := h.status.AddressBalance(r.Context(), address)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"addrStr":     address,
		"balanceSat":  balance.Balance,
		"balance":     model.SatoshisToCoin(balance.Balance),
		"receivedSat": balance.Received,
		"received":    model.SatoshisToCoin(balance.Received),
	})
}

type errorBody struct {
	Error string `json:"error"`
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, verusd.ErrNotFound) {
		h.writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}
	h.logger.Error("request failed", zap.Error(err))
	h.writeJSON(w, http.StatusBadGateway, errorBody{Error: "upstream unavailable"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("encode response failed", zap.Error(err))
	}
}

func optionsFromQuery(r *http.Request) insight.Options {
	q := r.URL.Query()
	return insight.Options{
		NoScriptSig: queryFlag(q.Get("noScriptSig")),
		NoAsm:       queryFlag(q.Get("noAsm")),
		NoSpent:     queryFlag(q.Get("noSpent")),
	}
}

func queryFlag(v string) bool {
	return v == "1" || v == "true"
}

func pageFromQuery(r *http.Request) (uint32, error) {
	v := r.URL.Query().Get("pageNum")
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n > math.MaxUint32 {
		return 0, errors.New("invalid page number")
	}
	return safe.Uint32(n)
}
