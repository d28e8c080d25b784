package wallet_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	nockrpctest "github.com/uwupunks/nockchain-rpc/testing"
	"github.com/uwupunks/nockchain-rpc/wallet"
)

// listing builds a wallet listing with the given asset amounts.
func listing(amounts ...uint64) string {
	var b strings.Builder
	b.WriteString("wallet notes for pubkey\n\n")
	for _, a := range amounts {
		b.WriteString("- name: [first last]\n")
		b.WriteString("- assets: ")
		b.WriteString(strconv.FormatUint(a, 10))
		b.WriteString("\n")
	}
	return b.String()
}

func stub(output string, err error) wallet.Runner {
	return func(context.Context, string, string) ([]byte, error) {
		return []byte(output), err
	}
}

func newClient(run wallet.Runner) *wallet.Client {
	return wallet.New(wallet.Config{
		SocketPath: "/tmp/nockchain.sock",
		Logger:     nockrpctest.QuietLogger(),
		Run:        run,
	})
}

func TestGetBalance_SumsAndConverts(t *testing.T) {
	// Nine notes of 65536 nicks each: exactly 9 nocks.
	amounts := make([]uint64, 9)
	for i := range amounts {
		amounts[i] = 65536
	}
	c := newClient(stub(listing(amounts...), nil))

	got, err := c.GetBalance(context.Background(), "pk1")
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if got != 9.0 {
		t.Fatalf("balance = %v, want 9.0", got)
	}
}

func TestGetBalance_FractionalNocks(t *testing.T) {
	amounts := []uint64{32768, 0, 0, 0, 0, 0, 0, 0, 0}
	c := newClient(stub(listing(amounts...), nil))

	got, err := c.GetBalance(context.Background(), "pk1")
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if got != 0.5 {
		t.Fatalf("balance = %v, want 0.5 (unrounded nicks/65536)", got)
	}
}

func TestGetBalance_SkipsLogLines(t *testing.T) {
	out := "\x1b[32mINFO\x1b[0m wallet booted - assets: 999\n" + listing(1, 1, 1, 1, 1, 1, 1, 1, 1)
	c := newClient(stub(out, nil))

	got, err := c.GetBalance(context.Background(), "pk1")
	if err != nil {
		t.Fatalf("GetBalance: %v", err)
	}
	if got != 9.0/65536 {
		t.Fatalf("balance = %v: colored log line must not be scraped", got)
	}
}

func TestGetBalance_IncompleteListing(t *testing.T) {
	c := newClient(stub(listing(1, 2, 3), nil))

	_, err := c.GetBalance(context.Background(), "pk1")
	if err == nil || !strings.Contains(err.Error(), "incomplete output") {
		t.Fatalf("expected incomplete-output error, got %v", err)
	}
}

func TestGetBalance_EmptyOutput(t *testing.T) {
	c := newClient(stub("   \n", nil))

	_, err := c.GetBalance(context.Background(), "pk1")
	if err == nil || !strings.Contains(err.Error(), "empty command output") {
		t.Fatalf("expected empty-output error, got %v", err)
	}
}

func TestGetBalance_CommandError(t *testing.T) {
	cmdErr := errors.New("exit status 1: socket refused")
	c := newClient(stub("", cmdErr))

	_, err := c.GetBalance(context.Background(), "pk1")
	if !errors.Is(err, cmdErr) {
		t.Fatalf("expected wrapped command error, got %v", err)
	}
}

func TestGetBalance_Timeout(t *testing.T) {
	c := wallet.New(wallet.Config{
		Timeout: 20 * time.Millisecond,
		Logger:  nockrpctest.QuietLogger(),
		Run: func(ctx context.Context, _, _ string) ([]byte, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	})

	_, err := c.GetBalance(context.Background(), "pk1")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
