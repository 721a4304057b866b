package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarfdb/sarf/sarf/render"
)

var rootsCmd = &cobra.Command{
	Use:   "root",
	Short: "Manage the AVL-indexed root vocabulary",
}

var rootAddCmd = &cobra.Command{
	Use:   "add <root>...",
	Short: "Add triliteral roots",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := openLexicon()
		if err != nil {
			return err
		}
		defer lex.Close()

		for _, root := range args {
			if err := lex.InsertRoot(root); err != nil {
				fmt.Printf("%s: %v\n", root, err)
				continue
			}
			fmt.Printf("%s: added\n", root)
		}
		return nil
	},
}

var rootRemoveCmd = &cobra.Command{
	Use:   "rm <root>",
	Short: "Delete a root",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := openLexicon()
		if err != nil {
			return err
		}
		defer lex.Close()

		if err := lex.DeleteRoot(args[0]); err != nil {
			return err
		}
		fmt.Printf("%s: deleted\n", args[0])
		return nil
	},
}

var rootListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all roots in sorted order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := openLexicon()
		if err != nil {
			return err
		}
		defer lex.Close()

		for _, root := range lex.ListRoots() {
			fmt.Println(root)
		}
		return nil
	},
}

var rootSearchCmd = &cobra.Command{
	Use:   "search <root>",
	Short: "Check whether a root is indexed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := openLexicon()
		if err != nil {
			return err
		}
		defer lex.Close()

		if lex.SearchRoot(args[0]) {
			fmt.Printf("%s: found\n", args[0])
		} else {
			fmt.Printf("%s: not found\n", args[0])
		}
		return nil
	},
}

var rootTreeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Draw the AVL tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := openLexicon()
		if err != nil {
			return err
		}
		defer lex.Close()

		render.Tree(os.Stdout, lex.TreeStructure())
		fmt.Printf("height=%d roots=%d\n", lex.TreeHeight(), lex.RootCount())
		return nil
	},
}

var rootImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Bulk-import roots from a text file, one per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		lex, err := openLexicon()
		if err != nil {
			return err
		}
		defer lex.Close()

		report, err := lex.ImportRoots(f)
		if err != nil {
			return err
		}
		fmt.Printf("added %d, skipped %d\n", report.Added, report.Skipped)
		for _, msg := range report.Errors {
			fmt.Println(msg)
		}
		return nil
	},
}

var rootWordsCmd = &cobra.Command{
	Use:   "words <root>",
	Short: "Show the derived-word ledger of a root",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := openLexicon()
		if err != nil {
			return err
		}
		defer lex.Close()

		words, err := lex.DerivedWords(args[0])
		if err != nil {
			return err
		}
		for word, info := range words {
			fmt.Printf("%s\t%s\tx%d\n", word, info.Template, info.Frequency)
		}
		return nil
	},
}

func init() {
	rootsCmd.AddCommand(rootAddCmd, rootRemoveCmd, rootListCmd, rootSearchCmd,
		rootTreeCmd, rootImportCmd, rootWordsCmd)
	rootCmd.AddCommand(rootsCmd)
}
