package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarfdb/sarf/sarf/render"
)

var patternsCmd = &cobra.Command{
	Use:   "pattern",
	Short: "Manage the hash-indexed pattern templates",
}

var patternAddCmd = &cobra.Command{
	Use:   "add <template>...",
	Short: "Add pattern templates",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := openLexicon()
		if err != nil {
			return err
		}
		defer lex.Close()

		for _, template := range args {
			if err := lex.InsertPattern(template); err != nil {
				fmt.Printf("%s: %v\n", template, err)
				continue
			}
			fmt.Printf("%s: added\n", template)
		}
		return nil
	},
}

var patternRemoveCmd = &cobra.Command{
	Use:   "rm <template>",
	Short: "Delete a pattern template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := openLexicon()
		if err != nil {
			return err
		}
		defer lex.Close()

		if err := lex.DeletePattern(args[0]); err != nil {
			return err
		}
		fmt.Printf("%s: deleted\n", args[0])
		return nil
	},
}

var patternListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all templates in table order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := openLexicon()
		if err != nil {
			return err
		}
		defer lex.Close()

		for _, template := range lex.ListPatterns() {
			fmt.Println(template)
		}
		return nil
	},
}

var patternTableCmd = &cobra.Command{
	Use:   "table",
	Short: "Show the hash table buckets and diagnostics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := openLexicon()
		if err != nil {
			return err
		}
		defer lex.Close()

		render.BucketTable(os.Stdout, lex.Buckets())
		render.StatsTable(os.Stdout, lex.TableStats())
		return nil
	},
}

func init() {
	patternsCmd.AddCommand(patternAddCmd, patternRemoveCmd, patternListCmd, patternTableCmd)
	rootCmd.AddCommand(patternsCmd)
}
