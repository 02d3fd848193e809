package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nherb/hdifinder/internal/apperrors"
	"github.com/nherb/hdifinder/internal/config"
	"github.com/nherb/hdifinder/internal/hdwallet"
	logpkg "github.com/nherb/hdifinder/internal/logger"
	"github.com/nherb/hdifinder/pkg/finder"
	"github.com/nherb/hdifinder/pkg/types"
)

var cfg = config.NewConfig()

func main() {
	rootCmd := &cobra.Command{
		Use:   "hdifinder [flags] <mnemonic> <address>",
		Short: "Find the derivation index of an address in an HD wallet",
		Long: `A small utility to find whether an address belongs to an HD scheme.
It derives addresses along m/44'/0'/account'/0/i for every index in the
search range and reports the index (and encoding kind) that produces the
target address.`,
		Args: cobra.ExactArgs(2),
		Run:  runSearch,
	}

	rootCmd.Flags().StringVarP(&cfg.Passphrase, "passphrase", "p", "", "Mnemonic passphrase")
	rootCmd.Flags().Uint32VarP(&cfg.Start, "start", "s", config.DefaultStart, "Start of the index search range")
	rootCmd.Flags().Uint32VarP(&cfg.End, "end", "e", config.DefaultEnd, "End of the index search range (exclusive)")
	rootCmd.Flags().Uint32VarP(&cfg.ChunkSize, "chunksize", "c", config.DefaultChunkSize, "Number of indexes scanned per worker chunk")
	rootCmd.Flags().Uint32VarP(&cfg.Account, "account", "a", 0, "BIP-44 account number")
	rootCmd.Flags().IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Number of concurrent workers")
	rootCmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	rootCmd.Flags().StringVarP(&cfg.LogFile, "log-file", "l", "", "Log file for progress tracking (default: stderr)")
	rootCmd.Flags().IntVarP(&cfg.LogInterval, "log-interval", "i", cfg.LogInterval, "Progress logging interval in seconds")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(apperrors.ExitErrorGeneric)
	}
}

func runSearch(cmd *cobra.Command, args []string) {
	cfg.Mnemonic = args[0]
	cfg.Address = args[1]

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(apperrors.ExitErrorConfig)
	}

	log, cleanup, err := setupLogging()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(apperrors.ExitErrorGeneric)
	}
	defer cleanup()

	wallet, err := hdwallet.NewAccount(cfg.Mnemonic, cfg.Passphrase, cfg.Account)
	if err != nil {
		if errors.Is(err, hdwallet.ErrInvalidMnemonic) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(apperrors.ExitErrorConfig)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(apperrors.ExitErrorGeneric)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	f := finder.New(wallet, finder.Options{
		Workers:     cfg.Workers,
		LogInterval: time.Duration(cfg.LogInterval) * time.Second,
		Log:         log,
	})

	result, err := f.Search(ctx, types.SearchRange{Start: cfg.Start, End: cfg.End}, cfg.ChunkSize, cfg.Address)
	switch {
	case apperrors.IsContextError(err):
		log.Warn().Msg("search interrupted")
		os.Exit(apperrors.ExitErrorCanceled)
	case apperrors.IsConfigError(err):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(apperrors.ExitErrorConfig)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(apperrors.ExitErrorGeneric)
	case result == nil:
		fmt.Println("No match found.")
		os.Exit(apperrors.ExitNotFound)
	}

	fmt.Printf("address %s found at index %d. address type: %s\n", result.Value, result.Index, result.Kind)
}

// setupLogging builds the logger per the --log-file flag and returns a
// cleanup closing any opened file.
func setupLogging() (zerolog.Logger, func(), error) {
	if cfg.LogFile != "" {
		log, f, err := logpkg.NewFile(cfg.LogFile, cfg.Verbose)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		return log, func() { _ = f.Close() }, nil
	}
	return logpkg.New(os.Stderr, cfg.Verbose), func() {}, nil
}
