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
	"golang.org/x/sync/errgroup"

	"github.com/adfharrison1/go-qbe/pkg/server"
	"github.com/adfharrison1/go-qbe/pkg/storage"
)

var (
	port            string
	maxCollections  int
	autoCreate      bool
	rateLimit       float64
	rateBurst       int
	compression     bool
	shutdownTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "qbe-db",
	Short: "In-memory record store with query by example",
	Long: `qbe-db keeps named collections of flat records in memory, indexes them
by field value and serves lookups, queries by example and bulk updates over HTTP.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Example: `  qbe-db serve                          # Start with defaults
  qbe-db serve --port 9090 --rate-limit 500
  qbe-db serve --auto-create=false      # Require collections to be created first`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "8080", "Server port")
	serveCmd.Flags().IntVar(&maxCollections, "max-collections", 0, "Maximum number of collections (0 = unlimited)")
	serveCmd.Flags().BoolVar(&autoCreate, "auto-create", true, "Create autoindexed collections on first insert")
	serveCmd.Flags().Float64Var(&rateLimit, "rate-limit", 0, "Requests per second (0 = unlimited)")
	serveCmd.Flags().IntVar(&rateBurst, "rate-burst", 100, "Rate limiter burst size")
	serveCmd.Flags().BoolVar(&compression, "compression", true, "Compress responses (zstd, lz4, gzip)")
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "Grace period for outstanding requests")

	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context) error {
	storageOptions := []storage.StorageOption{storage.WithAutoCreate(autoCreate)}
	if maxCollections > 0 {
		storageOptions = append(storageOptions, storage.WithMaxCollections(maxCollections))
		log.Printf("INFO: Max collections set to: %d", maxCollections)
	}
	if !autoCreate {
		log.Printf("INFO: Auto-create disabled - collections must be created explicitly")
	}

	srv := server.NewServer(
		server.WithStorageOptions(storageOptions...),
		server.WithRateLimit(rateLimit, rateBurst),
		server.WithCompression(compression),
	)

	httpServer := &http.Server{
		Addr:              ":" + port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("INFO: Starting qbe-db server on :%s", port)
		log.Printf("INFO: API endpoints available at http://localhost:%s", port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("INFO: Shutting down server...")

		// Give outstanding requests a deadline for completion
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Println("INFO: Server exited")
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Printf("ERROR: %v", err)
		os.Exit(1)
	}
}
