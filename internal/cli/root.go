// Package cli implements vethubctl, the directory admin tool.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	inforequeststore "github.com/dalemusser/vethub/internal/app/store/inforequests"
	"github.com/dalemusser/vethub/internal/app/store/queries/resourcesearch"
	resourcestore "github.com/dalemusser/vethub/internal/app/store/resources"
	"github.com/dalemusser/vethub/internal/app/system/cache"
	"github.com/dalemusser/vethub/internal/app/system/indexes"
	"github.com/dalemusser/vethub/internal/app/system/validators"
	"github.com/dalemusser/vethub/internal/domain/models"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Directory is the slice of the resource store the commands use.
type Directory interface {
	resourcesearch.Source
	Upsert(ctx context.Context, r models.Resource) (bool, error)
	FindForCategory(ctx context.Context, cat models.WizardCategory, limit int64) ([]models.Resource, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// Invalidator drops cached result pages.
type Invalidator interface {
	Invalidate(ctx context.Context) (int, error)
}

// RequestLister reads stored info requests.
type RequestLister interface {
	ListForResource(ctx context.Context, resourceID string, limit int64) ([]models.InfoRequest, error)
	CountSince(ctx context.Context, t time.Time) (int64, error)
	GetByReference(ctx context.Context, ref string) (models.InfoRequest, error)
}

// Services used by the commands. They are set by connect, or directly by tests.
var (
	directory    Directory
	pageCache    Invalidator
	requests     RequestLister
	ensureSchema func(ctx context.Context) error
	closeAll     func()
	logger       = zap.NewNop()
)

var (
	mongoURI  string
	database  string
	redisAddr string
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "vethubctl",
	Short: "Administer the VetHub resource directory",
	Long: `vethubctl imports seed files into the resource directory, runs
directory searches and wizard recommendations from the command line, and
maintains the directory's indexes.`,
	SilenceUsage:      true,
	PersistentPreRunE: connect,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeAll != nil {
			closeAll()
			closeAll = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", envOr("VETHUB_MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection URI")
	rootCmd.PersistentFlags().StringVar(&database, "db", envOr("VETHUB_MONGO_DATABASE", "vethub"), "MongoDB database name")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis-addr", os.Getenv("VETHUB_REDIS_ADDR"), "Redis address for cache invalidation (optional)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "overall command timeout")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// connect wires the services unless they are already set.
func connect(cmd *cobra.Command, args []string) error {
	if directory != nil {
		return nil
	}
	// A search over a local seed file needs no database.
	if cmd == searchCmd && searchFile != "" {
		return nil
	}

	l, err := zap.NewDevelopment()
	if err == nil {
		logger = l
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("ping MongoDB: %w", err)
	}
	db := client.Database(database)

	directory = resourcestore.New(db)
	requests = inforequeststore.New(db)
	ensureSchema = func(ctx context.Context) error {
		if err := validators.EnsureAll(ctx, db); err != nil {
			return err
		}
		return indexes.EnsureAll(ctx, db)
	}

	var rdb *redis.Client
	if redisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: redisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable; cached pages will not be invalidated", zap.Error(err))
			_ = rdb.Close()
			rdb = nil
		} else {
			pageCache = cache.NewPages(rdb, "vethub:page:", cache.DefaultTTL, logger)
		}
	}

	closeAll = func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = client.Disconnect(context.Background())
		_ = logger.Sync()
		directory, pageCache, requests, ensureSchema = nil, nil, nil, nil
	}
	return nil
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

var errNotConfigured = errors.New("directory not configured")
