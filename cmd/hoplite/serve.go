package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/hellenika/hoplite/pkg/api"
)

const serverVersion = "1.0.0"

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	mcpMode := fs.Bool("mcp", false, "serve MCP over stdio instead of HTTP")
	fs.Parse(args)

	logger := newLogger()
	cfg := loadConfig(*cfgPath, logger)

	provider, err := newProvider(cfg, logger)
	if err != nil {
		logger.Error("lemma provider init failed", "error", err)
		os.Exit(1)
	}
	defer provider.Close()

	idx, err := buildIndex(cfg, provider, logger)
	if err != nil {
		logger.Error("deck index build failed", "error", err)
		os.Exit(1)
	}
	logger.Info("deck index ready", "notes", idx.Stats().Notes, "lemma_backend", provider.BackendName())

	svc := api.NewService(idx, provider, logger)

	if *mcpMode {
		srv := server.NewMCPServer("hoplite", serverVersion)
		api.RegisterMCPTools(srv, svc)
		logger.Info("serving MCP over stdio")
		if err := server.ServeStdio(srv); err != nil {
			logger.Error("mcp server error", "error", err)
			os.Exit(1)
		}
		provider.SaveCache()
		return
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.NewRouter(svc),
	}

	// SIGHUP: rebuild the deck index from the export.
	// SIGINT/SIGTERM: graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("SIGHUP received, reloading deck index")
			fresh, err := rebuildIndex(cfg, provider, logger)
			if err != nil {
				logger.Error("reload failed", "error", err)
				continue
			}
			svc.Swap(fresh)
		}
	}()

	go func() {
		logger.Info("hoplite listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	srv.Shutdown(context.Background())
	provider.SaveCache()
}
