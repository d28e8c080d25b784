package local_test

import (
	"context"
	"testing"

	"github.com/uwupunks/nockchain-rpc/local"
	"github.com/uwupunks/nockchain-rpc/service"
	nockrpctest "github.com/uwupunks/nockchain-rpc/testing"
)

func TestLocalConnection_QueryCompliance(t *testing.T) {
	store := nockrpctest.OpenFixture(t, nockrpctest.ComplianceSeeds(t))
	svc := service.New(store, nil, nockrpctest.QuietLogger())

	conn := local.NewConnection(svc, nil)
	defer conn.Close()

	nockrpctest.RunQueryCompliance(t, conn)
}

func TestLocalConnection_NoWallet(t *testing.T) {
	store := nockrpctest.OpenFixture(t, nil)
	conn := local.NewConnection(service.New(store, nil, nockrpctest.QuietLogger()), nil)

	if _, err := conn.GetBalance(context.Background(), "pk1"); err == nil {
		t.Fatal("expected GetBalance to fail without a wallet client")
	}
}
