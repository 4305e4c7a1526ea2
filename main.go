package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seowoojae/shelfd/catalog"
	"github.com/seowoojae/shelfd/config"
	"github.com/seowoojae/shelfd/log"
	"github.com/seowoojae/shelfd/server"
	"github.com/seowoojae/shelfd/storage"
	"github.com/seowoojae/shelfd/store"
	"github.com/seowoojae/shelfd/store/db"
	"github.com/seowoojae/shelfd/version"
	"github.com/seowoojae/shelfd/worker"
)

const (
	greetingBanner = `
███████ ██   ██ ███████ ██      ███████ ██████
██      ██   ██ ██      ██      ██      ██   ██
███████ ███████ █████   ██      █████   ██   ██
     ██ ██   ██ ██      ██      ██      ██   ██
███████ ██   ██ ███████ ███████ ██      ██████
`
)

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:   "shelfd",
		Short: "Shelfd is a personal reading tracker",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			database, err := db.NewDB()
			if err != nil {
				log.Error("Error connecting to database", zap.Error(err))
				return
			}
			defer database.Close()
			if err := database.Migrate(ctx); err != nil {
				log.Error("Error migrating database", zap.Error(err))
				return
			}

			s := store.NewStore(database.DB)
			if err := s.Ping(); err != nil {
				log.Error("Error pinging database", zap.Error(err))
				return
			}

			catalogClient := catalog.NewClient(config.Opts)
			covers := storage.NewCoverStore(config.Opts.Data)
			mirrorPool := worker.NewPool(s, covers, config.Opts.WorkerPoolSize)

			fmt.Print(greetingBanner)
			fmt.Printf("Version %s\n", version.GetCurrentVersion())

			httpServer := server.StartServer(ctx, s, catalogClient, covers, mirrorPool)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop

			log.Info("Shutting down")
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				log.Error("Error shutting down server", zap.Error(err))
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	var (
		opts *config.Options
		err  error
	)
	if configPath != "" {
		opts, err = config.ParseFile(configPath)
	} else {
		opts, err = config.GetConfig()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.Opts = opts
	log.Logger = log.NewLogger()
}

func main() {
	defer log.Logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
