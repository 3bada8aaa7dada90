package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/repgenie/repgenie/internal/profile"
	"github.com/repgenie/repgenie/plugin/ai"
	"github.com/repgenie/repgenie/server"
	"github.com/repgenie/repgenie/store"
	"github.com/repgenie/repgenie/store/db"
)

const greetingBanner = `RepGenie - your AI fitness companion`

var rootCmd = &cobra.Command{
	Use:   "repgenie",
	Short: "An AI fitness chat service",
	Run: func(_ *cobra.Command, _ []string) {
		instanceProfile := &profile.Profile{
			Mode:   viper.GetString("mode"),
			Addr:   viper.GetString("addr"),
			Port:   viper.GetInt("port"),
			Data:   viper.GetString("data"),
			Driver: viper.GetString("driver"),
			DSN:    viper.GetString("dsn"),
		}
		instanceProfile.FromEnv()
		if err := instanceProfile.Validate(); err != nil {
			slog.Error("invalid configuration", slog.String("error", err.Error()))
			os.Exit(1)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		slog.SetDefault(logger)

		dbDriver, err := db.NewDBDriver(instanceProfile)
		if err != nil {
			slog.Error("failed to create db driver", slog.String("error", err.Error()))
			os.Exit(1)
		}

		storeInstance := store.New(dbDriver, instanceProfile)
		if err := storeInstance.Migrate(ctx); err != nil {
			slog.Error("failed to migrate database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if err := storeInstance.Close(); err != nil {
				slog.Warn("failed to close store", slog.String("error", err.Error()))
			}
		}()

		provider, err := ai.NewProvider(&ai.Config{
			BaseURL:         instanceProfile.OpenAIBaseURL,
			APIKey:          instanceProfile.OpenAIAPIKey,
			ChatModel:       instanceProfile.ChatModel,
			VisionModel:     instanceProfile.VisionModel,
			TranscribeModel: instanceProfile.TranscribeModel,
		})
		if err != nil {
			slog.Error("failed to create AI provider", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := provider.Validate(); err != nil {
			slog.Warn("AI provider is not fully configured; agent calls will fail",
				slog.String("error", err.Error()))
		}

		srv := server.NewServer(instanceProfile, storeInstance, provider, logger)

		fmt.Println(greetingBanner)
		fmt.Printf("Version %s has been started on %s:%d\n",
			instanceProfile.Version, instanceProfile.Addr, instanceProfile.Port)

		if err := srv.Start(ctx); err != nil {
			slog.Error("server stopped with error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("mode", "demo", `mode of the server, can be "prod", "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "binding address for the server")
	rootCmd.PersistentFlags().Int("port", 8232, "binding port for the server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database connection string")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("repgenie")
	viper.AutomaticEnv()
}
