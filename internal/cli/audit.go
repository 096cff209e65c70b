// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/alvinbaena/pwd-strength/internal/audit"
	"github.com/alvinbaena/pwd-strength/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"io"
	"os"
	"os/signal"
	"path/filepath"
)

var (
	auditCmd = &cobra.Command{
		Use:   "audit",
		Short: "Audit a list of candidate passwords, one per line",
		Long: "Evaluate every password of a newline separated file and check it against the breach API. " +
			"Only line numbers and results are reported, passwords are never printed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return auditCommand(cmd)
		},
	}
)

//goland:noinspection GoUnhandledErrorResult
func init() {
	auditCmd.Flags().StringVarP(&inputFile, "in-file", "i", "", "Candidate passwords file, one per line. Use - for stdin (required)")
	auditCmd.MarkFlagRequired("in-file")
	auditCmd.Flags().IntVarP(&threads, "threads", "t", 0, "Number of concurrent checks. If omitted or less than 1, defaults to four times the number of logical processors of the machine.")
	auditCmd.Flags().BoolVar(&offline, "offline", false, "Skip the breach checks")

	rootCmd.AddCommand(auditCmd)
}

func auditCommand(cmd *cobra.Command) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	var in io.Reader
	if inputFile == "-" {
		in = cmd.InOrStdin()
	} else {
		abs, err := filepath.Abs(inputFile)
		if err != nil {
			log.Fatal().Err(err).Msgf("could not get absolute path of file")
		}

		file, err := os.Open(abs)
		if err != nil {
			return err
		}

		defer func(file *os.File) {
			if err = file.Close(); err != nil {
				log.Error().Err(err).Msg("error closing candidate passwords file")
			}
		}(file)
		in = file
	}

	client := breachClient()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	// A nil *hibp.Client stored in the interface would not read as nil.
	auditor := audit.New(nil, threads)
	if client != nil {
		defer client.Close()
		auditor = audit.New(client, threads)
	}

	summary, err := auditor.Run(ctx, in)
	if err != nil {
		return err
	}

	summary.Log()
	if client != nil {
		client.LogSummary()
	}

	return nil
}
