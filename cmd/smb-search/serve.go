// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/smb-search/internal/search"
	"github.com/pdiddy/smb-search/internal/session"
	"github.com/pdiddy/smb-search/internal/web"
)

const shutdownGrace = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web search form",
	Long: `Serve starts the web front end: a search form, a results table and a CSV
download. Results are kept in memory per browser session only.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadAppConfig(viper.GetViper(), loadedSecrets)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: providerTimeout(cfg.Provider)}
	provider, err := search.NewProvider(cfg.Provider, client)
	if err != nil {
		return err
	}
	if cfg.Provider.APIKey == "" {
		log.Printf("warning: no API key for provider %s; searches will fail until one is set", provider.Name())
	}

	srv := web.NewServer(provider, cfg.Provider, session.NewStore(cfg.Server.SessionTTL), os.Stderr)
	srv.SetSecureCookies(cfg.Server.SecureCookies)

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      providerTimeout(cfg.Provider) + 10*time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("smb-search %s listening on %s (provider %s)", version, cfg.Server.Addr, provider.Name())
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
