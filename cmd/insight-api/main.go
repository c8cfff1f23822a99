package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/alexenglish/insight-api-komodo/internal/identity"
	"github.com/alexenglish/insight-api-komodo/internal/insight"
	"github.com/alexenglish/insight-api-komodo/internal/metrics"
	"github.com/alexenglish/insight-api-komodo/internal/registry"
	"github.com/alexenglish/insight-api-komodo/internal/script"
	"github.com/alexenglish/insight-api-komodo/internal/transport"
	"github.com/alexenglish/insight-api-komodo/internal/verusd"
)

var config struct {
	Addr         string `long:"addr" env:"INSIGHT_ADDR" description:"api listen addr" default:":3001"`
	Chain        string `long:"chain" env:"INSIGHT_CHAIN" description:"chain name" default:"VRSC"`
	NodeAddr     string `long:"node-addr" env:"INSIGHT_NODE_ADDR" description:"node rpc host:port" default:"127.0.0.1:27486"`
	NodeUser     string `long:"node-user" env:"INSIGHT_NODE_USER" description:"node rpc user"`
	NodePass     string `long:"node-pass" env:"INSIGHT_NODE_PASS" description:"node rpc password"`
	RegistryPath string `long:"registry-path" env:"INSIGHT_REGISTRY_PATH" description:"protocol address registry json"`
	BlockedPath  string `long:"blocked-path" env:"INSIGHT_BLOCKED_PATH" description:"blocked address list json"`
	RateLimit    int    `long:"rate-limit" env:"INSIGHT_RATE_LIMIT" description:"requests per second" default:"100"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	reg, err := registry.Load(config.RegistryPath, config.BlockedPath)
	if err != nil {
		logger.Fatal("Load registries", zap.Error(err))
	}
	logger.Info("Registries loaded", zap.Int("protocolAddresses", reg.Len()))

	rpc, err := rpcclient.New(&rpcclient.ConnConfig{
		Host:         config.NodeAddr,
		User:         config.NodeUser,
		Pass:         config.NodePass,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
	if err != nil {
		logger.Fatal("Connect to node", zap.Error(err))
	}
	defer rpc.Shutdown()

	node := verusd.NewClient(rpc, metrics.NewRPCClient(config.Chain), logger.Named("verusd"))
	resolver := identity.NewResolver(node, metrics.NewResolver(), logger.Named("identity"))
	decoder := script.NewDecoder(node)
	enricher := insight.NewEnricher(resolver, decoder, logger.Named("enricher"))
	transformer := insight.NewTransformer(enricher, reg, logger.Named("transformer"))
	service := insight.NewService(node, transformer, logger.Named("service"))

	mux := http.NewServeMux()
	transport.NewHandler(service, node, reg, logger.Named("http")).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())

	handler := transport.RateLimit(ratelimit.New(config.RateLimit))(mux)
	handler = transport.Observe(metrics.NewHTTP(), logger.Named("http"))(handler)

	s := &http.Server{
		Addr:              config.Addr,
		Handler:           cors.Default().Handler(handler),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", config.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
}
