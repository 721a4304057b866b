package main

import (
	"github.com/spf13/cobra"

	"github.com/sarfdb/sarf/sarf/lexicon"
	"github.com/sarfdb/sarf/sarf/logging"
	"github.com/sarfdb/sarf/sarf/server"
	"github.com/sarfdb/sarf/sarf/storage"
)

var (
	flagAddr       string
	flagConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := server.LoadConfig(flagConfigPath)
		if err != nil {
			return err
		}
		// Command-line flags win over config file and environment.
		if cmd.Flags().Changed("addr") {
			cfg.Addr = flagAddr
		}
		if cmd.Flags().Changed("data") {
			cfg.DataDir = flagDataDir
		}
		if cmd.Flags().Changed("phonology") {
			cfg.Phonology = flagPhonology
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = flagLogLevel
		}

		log := logging.New(cfg.Log)

		opts := []lexicon.Option{
			lexicon.WithLogger(log),
			lexicon.WithPhonology(cfg.Phonology),
		}
		if cfg.DataDir != "" {
			store, err := storage.NewBadgerStore(cfg.DataDir)
			if err != nil {
				return err
			}
			opts = append(opts, lexicon.WithStore(store))
		}

		lex, err := lexicon.New(opts...)
		if err != nil {
			return err
		}
		defer lex.Close()

		return server.New(lex, log).ListenAndServe(cfg.Addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", ":8000", "listen address")
	serveCmd.Flags().StringVar(&flagConfigPath, "config", "", "JSON config file")
	rootCmd.AddCommand(serveCmd)
}
