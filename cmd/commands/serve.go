package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pyrx/pyrx-cli/internal/cli"
	"github.com/pyrx/pyrx-cli/pkg/assets"
	"github.com/pyrx/pyrx-cli/pkg/export"
	"github.com/pyrx/pyrx-cli/pkg/files"
	"github.com/pyrx/pyrx-cli/pkg/layout"
	"github.com/pyrx/pyrx-cli/pkg/server"
)

const shutdownTimeout = 5 * time.Second

var (
	serveAddr       string
	serveNoAutosave bool
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the editor backend for the browser",
		Long: `Serve the layout over HTTP for the browser editor.

The JSON API lives under /api and a websocket at /ws pushes the folder
preview after every change. Changes are written back to the layout file
unless autosave is off.

Examples:
  pyrx serve

  # Listen on another address without writing the layout file
  pyrx serve --addr :9000 --no-autosave`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from settings)")
	cmd.Flags().BoolVar(&serveNoAutosave, "no-autosave", false, "Keep changes in memory only")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, err := commandContext(cmd)
	if err != nil {
		return err
	}

	var store *layout.Store
	if files.LayoutExists(ctx.LayoutPath) {
		if store, err = ctx.Store(); err != nil {
			return err
		}
	} else {
		store = layout.NewStore(ctx.Settings.Extension.DefaultName)
		cli.PrintWarning("No layout at %s, starting a new one", ctx.LayoutPath)
	}

	addr := serveAddr
	if addr == "" {
		addr = ctx.Settings.Server.Addr
	}

	session := server.NewSession(store, server.SessionOptions{
		LayoutPath: ctx.LayoutPath,
		Autosave:   ctx.Settings.Server.Autosave && !serveNoAutosave,
		Logger:     ctx.Logger,
	})
	srv := server.New(session, server.Options{
		Exporter: export.New(assets.NewLoader(ctx.Settings.Icons.Source), ctx.Logger),
		Logger:   ctx.Logger,
	})
	defer srv.Close()

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	cli.PrintSuccess("Serving %s on http://%s", store.ExtensionName(), addr)
	ctx.Logger.Info("server started", "addr", addr, "layout", ctx.LayoutPath)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-sigCtx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	cli.PrintInfo("Server stopped")
	return nil
}
