package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <root> <template>",
	Short: "Generate one word from an indexed root and template",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := openLexicon()
		if err != nil {
			return err
		}
		defer lex.Close()

		word, err := lex.Generate(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Println(word)
		return nil
	},
}

var deriveCmd = &cobra.Command{
	Use:   "derive <root> [template...]",
	Short: "Derive words for a root, from all templates or a subset",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := openLexicon()
		if err != nil {
			return err
		}
		defer lex.Close()

		if len(args) == 1 {
			derivations, err := lex.GenerateAll(args[0])
			if err != nil {
				return err
			}
			for _, d := range derivations {
				fmt.Printf("%s\t%s\n", d.Template, d.Word)
			}
			return nil
		}

		derivations, skipped, err := lex.GenerateSubset(args[0], args[1:])
		if err != nil {
			return err
		}
		for _, d := range derivations {
			fmt.Printf("%s\t%s\n", d.Template, d.Word)
		}
		for _, template := range skipped {
			fmt.Printf("%s\t(not in index, skipped)\n", template)
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <word> <root>",
	Short: "Check whether a word derives from a root",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := openLexicon()
		if err != nil {
			return err
		}
		defer lex.Close()

		template, valid, err := lex.ValidateWord(args[0], args[1])
		if err != nil {
			return err
		}
		if valid {
			fmt.Printf("valid (template %s)\n", template)
		} else {
			fmt.Println("invalid")
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lex, err := openLexicon()
		if err != nil {
			return err
		}
		defer lex.Close()

		s := lex.Stats()
		fmt.Printf("roots:       %d\n", s.TotalRoots)
		fmt.Printf("patterns:    %d\n", s.TotalPatterns)
		fmt.Printf("tree height: %d\n", s.TreeHeight)
		fmt.Printf("load factor: %.3f\n", s.HashLoadFactor)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd, deriveCmd, validateCmd, statsCmd)
}
