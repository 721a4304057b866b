package main

import (
	"github.com/spf13/cobra"

	"github.com/sarfdb/sarf/sarf/lexicon"
	"github.com/sarfdb/sarf/sarf/logging"
	"github.com/sarfdb/sarf/sarf/storage"
)

var (
	flagDataDir   string
	flagLogLevel  string
	flagPhonology bool
)

// rootCmd is the entry point of the sarf CLI.
var rootCmd = &cobra.Command{
	Use:   "sarf",
	Short: "Arabic root and pattern morphology engine",
	Long: `sarf indexes triliteral Arabic roots in an AVL tree and pattern
templates in a chained hash table, and derives or validates surface
words by substituting root letters into template placeholders.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data", "data", "badger database directory ('' disables persistence)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().BoolVar(&flagPhonology, "phonology", false, "apply phonological refinement rules")
}

// openLexicon builds a lexicon from the persistent flags. The caller
// must Close it.
func openLexicon() (*lexicon.Lexicon, error) {
	log := logging.New(logging.Config{Level: flagLogLevel})

	opts := []lexicon.Option{
		lexicon.WithLogger(log),
		lexicon.WithPhonology(flagPhonology),
	}
	if flagDataDir != "" {
		store, err := storage.NewBadgerStore(flagDataDir)
		if err != nil {
			return nil, err
		}
		opts = append(opts, lexicon.WithStore(store))
	}
	return lexicon.New(opts...)
}
