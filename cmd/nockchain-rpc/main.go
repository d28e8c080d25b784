// Command nockchain-rpc serves read-only block queries and wallet
// balances over JSON-RPC and gRPC, backed by the node's block index.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"

	nockrpc "github.com/uwupunks/nockchain-rpc"
	"github.com/uwupunks/nockchain-rpc/config"
	nockgrpc "github.com/uwupunks/nockchain-rpc/grpc"
	"github.com/uwupunks/nockchain-rpc/index"
	"github.com/uwupunks/nockchain-rpc/rpc"
	"github.com/uwupunks/nockchain-rpc/service"
	"github.com/uwupunks/nockchain-rpc/wallet"
)

func main() {
	log := logrus.New()
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	conf, err := config.Load(configPath)
	if err != nil {
		log.WithError(err).Fatal("loading configuration")
	}

	// A missing or incompatible store is fatal here; per-request
	// read failures later are not.
	store, err := index.Open(index.StoreConfig{Path: conf.StorePath, Logger: log})
	if err != nil {
		log.WithError(err).WithField("path", conf.StorePath).Fatal("opening block index")
	}
	defer store.Close()

	svc := service.New(store, nil, log)

	var bal nockrpc.Balances
	if conf.SocketPath != "" {
		bal = wallet.New(wallet.Config{
			SocketPath: conf.SocketPath,
			Timeout:    conf.CommandTimeout(),
			Logger:     log,
		})
	} else {
		log.Warn("NOCKCHAIN_SOCKET not set; getBalance disabled")
	}

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", conf.HTTPPort),
		Handler: rpc.NewServer(svc, bal, log).Handler(),
	}
	go func() {
		log.WithField("addr", httpSrv.Addr).Info("serving JSON-RPC")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("JSON-RPC server failed")
		}
	}()

	lis, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", conf.GRPCPort))
	if err != nil {
		log.WithError(err).Fatal("gRPC listen failed")
	}
	gs := grpc.NewServer()
	nockgrpc.NewGRPCServer(svc, bal).Register(gs)
	go func() {
		log.WithField("addr", lis.Addr().String()).Info("serving gRPC")
		if err := gs.Serve(lis); err != nil {
			log.WithError(err).Fatal("gRPC server failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("JSON-RPC shutdown")
	}
	gs.GracefulStop()
}
