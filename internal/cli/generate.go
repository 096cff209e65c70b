// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"github.com/alvinbaena/pwd-strength/internal/util"
	"github.com/alvinbaena/pwd-strength/pkg/generator"
	"github.com/alvinbaena/pwd-strength/pkg/strength"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate strong random passwords",
		Long: "Generate passwords from a cryptographically secure source. Every password has at least one " +
			"lowercase letter, uppercase letter, digit and symbol.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateCommand()
		},
	}
)

func init() {
	generateCmd.Flags().IntVarP(&length, "length", "l", generator.DefaultLength,
		fmt.Sprintf("Length of each password, between %d and %d", generator.MinLength, generator.MaxLength))
	generateCmd.Flags().IntVarP(&count, "count", "c", 1, "Number of passwords to generate")

	rootCmd.AddCommand(generateCmd)
}

func generateCommand() error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	if count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", count)
	}

	gen := generator.New(nil)
	for i := 0; i < count; i++ {
		pwd, err := gen.Generate(length)
		if err != nil {
			return err
		}

		// Passwords go to stdout so they can be piped, never to the log.
		fmt.Println(pwd)

		if verbose {
			estimate := strength.Evaluate(pwd)
			log.Debug().Msgf("generated password %d: %s, %.1f bits", i+1, estimate.Bucket, estimate.Entropy)
		}
	}

	return nil
}
