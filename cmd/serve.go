package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jyliuu/folio/internal/db"
	"github.com/jyliuu/folio/internal/server"
	"github.com/jyliuu/folio/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site with live reload",
	Long: `Starts an HTTP server that renders every page on request. The theme
toggle is remembered per visitor, notes are searchable under /api/search,
and with --watch open pages refresh when a note changes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (defaults to server.port)")
	serveCmd.Flags().Bool("watch", true, "reload content and refresh browsers when files change")
	serveCmd.Flags().Bool("memory", false, "keep preferences and the search index in memory")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Server.Port = port
	}
	watchFiles, _ := cmd.Flags().GetBool("watch")
	inMemory, _ := cmd.Flags().GetBool("memory")

	var database *db.DB
	if inMemory || cfg.Server.Database == "" {
		database, err = db.OpenMemory()
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.Server.Database), 0755); err != nil {
			return fmt.Errorf("creating database directory: %w", err)
		}
		database, err = db.Open(cfg.Server.Database)
	}
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	r, err := newRenderer(cfg)
	if err != nil {
		return err
	}

	// Live reload needs something to watch; remote content is never watched.
	liveReload := watchFiles && cfg.ContentURL == ""

	srv, err := server.New(server.Config{
		Port:        cfg.Server.Port,
		SiteTitle:   cfg.SiteTitle,
		ProfileFile: cfg.ProfileFile,
		StaticDir:   cfg.StaticDir,
		LiveReload:  liveReload,
		AllowAll:    cfg.Server.AllowAll,
	}, database, newLoader(cfg), r, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Reload(ctx); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if liveReload {
		w, err := watch.New(watchPaths(cfg.ContentDir, cfg.ProfileFile, cfg.StaticDir), watch.DefaultDebounce, logger)
		if err != nil {
			stop()
			g.Wait()
			return err
		}
		g.Go(func() error {
			return w.Run(ctx, func(changed []string) {
				logger.Info("files changed", zap.Strings("paths", changed))
				if err := srv.Reload(ctx); err != nil {
					logger.Error("reload failed", zap.Error(err))
				}
			})
		})
	}

	fmt.Fprintf(os.Stderr, "folio %s serving on http://localhost:%d\n", Version, cfg.Server.Port)
	fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())
	if liveReload {
		fmt.Fprintf(os.Stderr, "  Watching: %s\n", cfg.ContentDir)
	}

	return g.Wait()
}

// watchPaths drops unset entries.
func watchPaths(paths ...string) []string {
	var out []string
	for _, p := range paths {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
