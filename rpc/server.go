// Package rpc serves the indexer over JSON-RPC 2.0 on HTTP, keeping
// the wire behavior of the original nockchain RPC service: one POST
// route per method, a 2.0 envelope, and its error code assignment.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	nockrpc "github.com/uwupunks/nockchain-rpc"
	"github.com/uwupunks/nockchain-rpc/wallet"
)

// JSON-RPC 2.0 error codes served by this transport.
const (
	codeInvalidRequest = -32600
	codeInvalidParams  = -32602
	codeServerError    = -32000
	codeTimeout        = -32001
	codeParseError     = -32002
)

// Request is the JSON-RPC 2.0 request envelope.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *uint64         `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// Error is the JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

type successResponse struct {
	JSONRPC string  `json:"jsonrpc"`
	ID      *uint64 `json:"id"`
	Result  any     `json:"result"`
}

type errorResponse struct {
	JSONRPC string  `json:"jsonrpc"`
	ID      *uint64 `json:"id"`
	Error   *Error  `json:"error"`
}

type heightParams struct {
	Height uint64 `json:"height"`
}

type digestParams struct {
	Digest string `json:"digest"`
}

type balanceParams struct {
	Pubkey string `json:"pubkey"`
}

// Server is the JSON-RPC HTTP transport over the indexer and,
// optionally, the wallet.
type Server struct {
	idx nockrpc.Indexer
	bal nockrpc.Balances
	log *logrus.Logger
}

// NewServer creates the transport. bal may be nil when the balance
// capability is not deployed.
func NewServer(idx nockrpc.Indexer, bal nockrpc.Balances, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}
	return &Server{idx: idx, bal: bal, log: log}
}

// Handler returns the HTTP handler with one route per method.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/rpc/getBlockByHeight", s.handleGetBlockByHeight)
	mux.HandleFunc("/rpc/getBlockByDigest", s.handleGetBlockByDigest)
	mux.HandleFunc("/rpc/getBalance", s.handleGetBalance)
	return mux
}

func (s *Server) handleGetBlockByHeight(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r, "getBlockByHeight")
	if !ok {
		return
	}
	var p heightParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		s.writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "Invalid params", err.Error())
		return
	}

	blk, err := s.idx.GetBlockByHeight(r.Context(), p.Height)
	if err != nil {
		s.writeQueryError(w, req.ID, err)
		return
	}
	// A miss is a null result, not an error.
	s.writeResult(w, req.ID, blk)
}

func (s *Server) handleGetBlockByDigest(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r, "getBlockByDigest")
	if !ok {
		return
	}
	var p digestParams
	if err := json.Unmarshal(req.Params, &p); err != nil || p.Digest == "" {
		s.writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "Invalid params", "")
		return
	}

	blk, err := s.idx.GetBlockByDigest(r.Context(), p.Digest)
	if err != nil {
		s.writeQueryError(w, req.ID, err)
		return
	}
	s.writeResult(w, req.ID, blk)
}

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r, "getBalance")
	if !ok {
		return
	}
	if s.bal == nil {
		s.writeError(w, http.StatusNotImplemented, req.ID, codeServerError, "Server error", "balance capability not configured")
		return
	}
	var p balanceParams
	if err := json.Unmarshal(req.Params, &p); err != nil || p.Pubkey == "" {
		s.writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "Invalid params", "")
		return
	}

	nocks, err := s.bal.GetBalance(r.Context(), p.Pubkey)
	switch {
	case err == nil:
		s.writeResult(w, req.ID, nocks)
	case errors.Is(err, context.DeadlineExceeded):
		s.writeError(w, http.StatusInternalServerError, req.ID, codeTimeout, "Command timed out", "")
	case errors.Is(err, wallet.ErrUnparseable):
		s.writeError(w, http.StatusInternalServerError, req.ID, codeParseError, "Parsing error", err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, req.ID, codeServerError, "Command execution failed", err.Error())
	}
}

// readRequest decodes and validates the envelope. On failure it has
// already written the error response.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request, method string) (Request, bool) {
	var req Request
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, nil, codeInvalidRequest, "Invalid Request", "")
		return req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, nil, codeInvalidRequest, "Invalid Request", err.Error())
		return req, false
	}
	if req.JSONRPC != "2.0" || req.Method != method || req.Params == nil {
		s.log.WithFields(logrus.Fields{"method": req.Method, "want": method}).Warn("invalid request envelope")
		s.writeError(w, http.StatusBadRequest, req.ID, codeInvalidRequest, "Invalid Request", "")
		return req, false
	}
	return req, true
}

// writeQueryError maps the indexer error taxonomy onto the wire.
func (s *Server) writeQueryError(w http.ResponseWriter, id *uint64, err error) {
	s.log.WithError(err).Error("query failed")
	if nockrpc.IsInvalidArgument(err) {
		s.writeError(w, http.StatusBadRequest, id, codeInvalidParams, "Invalid params", err.Error())
		return
	}
	// Malformed stored data, render failures and store I/O all
	// surface as internal errors.
	s.writeError(w, http.StatusInternalServerError, id, codeServerError, "Server error", err.Error())
}

func (s *Server) writeResult(w http.ResponseWriter, id *uint64, result any) {
	s.writeJSON(w, http.StatusOK, successResponse{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) writeError(w http.ResponseWriter, status int, id *uint64, code int, message, data string) {
	s.writeJSON(w, status, errorResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &Error{Code: code, Message: message, Data: data},
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Error("writing response failed")
	}
}
