package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"

	"hugo-exporter/pkg/config"
	"hugo-exporter/pkg/handlers"
	"hugo-exporter/pkg/services"
	"hugo-exporter/pkg/wordpress"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the export service",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Init()
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			src, err := openSource(logger)
			if err != nil {
				return err
			}

			index := services.NewBundleIndex()

			r := gin.Default()

			// Session Setup
			store := cookie.NewStore([]byte(config.SessionSecret))
			r.Use(sessions.Sessions("exporter_session", store))

			r.POST("/login", handlers.Login)
			r.GET("/logout", handlers.Logout)

			api := r.Group("/api")
			api.Use(handlers.AuthRequired)
			{
				api.POST("/export", handlers.Export(src, index, logger))
				api.GET("/bundles", handlers.Bundles(index))
				api.GET("/asset", handlers.ServeAsset)
			}

			return r.Run(config.ListenAddr)
		},
	}
}

// openSource connects to the WordPress database when a DSN is configured.
// Without one the service still runs, but export requests are refused.
func openSource(logger *slog.Logger) (services.ContentSource, error) {
	if config.DBDSN == "" {
		logger.Warn("WP_DB_DSN not set, export endpoint disabled")
		return nil, nil
	}

	db, err := sql.Open("mysql", config.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("open wordpress database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("connect to wordpress database: %w", err)
	}

	logger.Info("connected to wordpress database", "prefix", config.TablePrefix)
	return wordpress.NewSource(db, config.TablePrefix), nil
}
