package rpc_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	nockrpc "github.com/uwupunks/nockchain-rpc"
	"github.com/uwupunks/nockchain-rpc/rpc"
	nockrpctest "github.com/uwupunks/nockchain-rpc/testing"
	"github.com/uwupunks/nockchain-rpc/types"
	"github.com/uwupunks/nockchain-rpc/wallet"
)

type envelope struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *uint64         `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpc.Error      `json:"error"`
}

func post(t *testing.T, h http.Handler, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not a JSON-RPC envelope: %v\n%s", err, w.Body.String())
	}
	return w.Code, env
}

func TestHTTP_GetBlockByHeight(t *testing.T) {
	mock := &nockrpctest.MockConnection{
		GetBlockByHeightFn: func(_ context.Context, height uint64) (*types.Block, error) {
			if height != 100 {
				return nil, nil
			}
			return &types.Block{Digest: "ab12", Height: "100"}, nil
		},
	}
	h := rpc.NewServer(mock, nil, nockrpctest.QuietLogger()).Handler()

	code, env := post(t, h, "/rpc/getBlockByHeight",
		`{"jsonrpc":"2.0","id":1,"method":"getBlockByHeight","params":{"height":100}}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if env.Error != nil {
		t.Fatalf("unexpected error: %+v", env.Error)
	}

	var blk types.Block
	if err := json.Unmarshal(env.Result, &blk); err != nil {
		t.Fatalf("result is not a block: %v", err)
	}
	if blk.Height != "100" || blk.Digest != "ab12" {
		t.Fatalf("block = %+v", blk)
	}
}

func TestHTTP_NotFoundIsNullResult(t *testing.T) {
	mock := &nockrpctest.MockConnection{}
	h := rpc.NewServer(mock, nil, nockrpctest.QuietLogger()).Handler()

	code, env := post(t, h, "/rpc/getBlockByHeight",
		`{"jsonrpc":"2.0","id":2,"method":"getBlockByHeight","params":{"height":101}}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200: absence is not an error", code)
	}
	if env.Error != nil {
		t.Fatalf("unexpected error: %+v", env.Error)
	}
	if string(env.Result) != "null" {
		t.Fatalf("result = %s, want null", env.Result)
	}
}

func TestHTTP_InvalidEnvelope(t *testing.T) {
	h := rpc.NewServer(&nockrpctest.MockConnection{}, nil, nockrpctest.QuietLogger()).Handler()

	for name, body := range map[string]string{
		"wrong version": `{"jsonrpc":"1.0","id":1,"method":"getBlockByHeight","params":{"height":1}}`,
		"wrong method":  `{"jsonrpc":"2.0","id":1,"method":"getBalance","params":{"height":1}}`,
		"no params":     `{"jsonrpc":"2.0","id":1,"method":"getBlockByHeight"}`,
		"not json":      `{{{`,
	} {
		code, env := post(t, h, "/rpc/getBlockByHeight", body)
		if code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, code)
		}
		if env.Error == nil || env.Error.Code != -32600 {
			t.Errorf("%s: error = %+v, want code -32600", name, env.Error)
		}
	}
}

func TestHTTP_RejectsGet(t *testing.T) {
	h := rpc.NewServer(&nockrpctest.MockConnection{}, nil, nockrpctest.QuietLogger()).Handler()

	req := httptest.NewRequest(http.MethodGet, "/rpc/getBlockByHeight", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
}

func TestHTTP_InvalidDigestKey(t *testing.T) {
	mock := &nockrpctest.MockConnection{
		GetBlockByDigestFn: func(_ context.Context, digest string) (*types.Block, error) {
			return nil, fmt.Errorf("digest %q: %w", digest, nockrpc.ErrInvalidKey)
		},
	}
	h := rpc.NewServer(mock, nil, nockrpctest.QuietLogger()).Handler()

	code, env := post(t, h, "/rpc/getBlockByDigest",
		`{"jsonrpc":"2.0","id":3,"method":"getBlockByDigest","params":{"digest":"0x_zz"}}`)
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	if env.Error == nil || env.Error.Code != -32602 {
		t.Fatalf("error = %+v, want code -32602", env.Error)
	}
}

func TestHTTP_MalformedRecordIsServerError(t *testing.T) {
	mock := &nockrpctest.MockConnection{
		GetBlockByHeightFn: func(context.Context, uint64) (*types.Block, error) {
			return nil, fmt.Errorf("decoding stored record: %w", nockrpc.ErrTruncated)
		},
	}
	h := rpc.NewServer(mock, nil, nockrpctest.QuietLogger()).Handler()

	code, env := post(t, h, "/rpc/getBlockByHeight",
		`{"jsonrpc":"2.0","id":4,"method":"getBlockByHeight","params":{"height":9}}`)
	if code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", code)
	}
	if env.Error == nil || env.Error.Code != -32000 {
		t.Fatalf("error = %+v, want code -32000", env.Error)
	}
}

func TestHTTP_GetBalance(t *testing.T) {
	mock := &nockrpctest.MockConnection{
		GetBalanceFn: func(context.Context, string) (float64, error) {
			return 2.5, nil
		},
	}
	h := rpc.NewServer(mock, mock, nockrpctest.QuietLogger()).Handler()

	code, env := post(t, h, "/rpc/getBalance",
		`{"jsonrpc":"2.0","id":5,"method":"getBalance","params":{"pubkey":"pk1"}}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if string(env.Result) != "2.5" {
		t.Fatalf("result = %s, want 2.5", env.Result)
	}
}

func TestHTTP_BalanceErrorCodes(t *testing.T) {
	cases := map[string]struct {
		err  error
		code int
	}{
		"timeout":      {context.DeadlineExceeded, -32001},
		"unparseable":  {fmt.Errorf("%w: incomplete output", wallet.ErrUnparseable), -32002},
		"command fail": {fmt.Errorf("wallet command: exit status 1"), -32000},
	}
	for name, tc := range cases {
		mock := &nockrpctest.MockConnection{
			GetBalanceFn: func(context.Context, string) (float64, error) {
				return 0, tc.err
			},
		}
		h := rpc.NewServer(mock, mock, nockrpctest.QuietLogger()).Handler()

		code, env := post(t, h, "/rpc/getBalance",
			`{"jsonrpc":"2.0","id":6,"method":"getBalance","params":{"pubkey":"pk1"}}`)
		if code != http.StatusInternalServerError {
			t.Errorf("%s: status = %d, want 500", name, code)
		}
		if env.Error == nil || env.Error.Code != tc.code {
			t.Errorf("%s: error = %+v, want code %d", name, env.Error, tc.code)
		}
	}
}
