package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/poai/internal/cli"
	"codeberg.org/snonux/poai/internal/models"
	"codeberg.org/snonux/poai/internal/processor"
	"codeberg.org/snonux/poai/internal/provider"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		if flags.Verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		cli.InitConfig(flags.CfgFile)
		cli.ApplyConfig(flags)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, cancel := setupContext()
		defer cancel()
		return runCommand(ctx, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		log.Error().Msg(err.Error())
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, flags *cli.Flags) error {
	// Handle --list-models flag
	if flags.ListModels {
		if err := provider.Validate(flags.Provider); err != nil {
			return err
		}
		lister := models.NewLister(provider.Config{
			Provider: flags.Provider,
			APIKey:   cli.GetAPIKey(flags.Provider),
		})
		return lister.ListAvailableModels(ctx, os.Stdout)
	}

	proc, err := processor.NewProcessor(ctx, flags)
	if err != nil {
		return err
	}

	_, err = proc.Run(ctx)
	return err
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
