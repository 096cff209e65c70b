// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"errors"
	"github.com/alvinbaena/pwd-strength/internal/report"
	"github.com/alvinbaena/pwd-strength/internal/util"
	"github.com/alvinbaena/pwd-strength/pkg/hibp"
	"github.com/alvinbaena/pwd-strength/pkg/strength"
	"github.com/manifoldco/promptui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
)

var (
	checkCmd = &cobra.Command{
		Use:   "check [PASSWORD]",
		Short: "Check the strength of a password and if it appears in a known breach",
		Args: func(cmd *cobra.Command, args []string) error {
			if !interactive {
				return cobra.ExactArgs(1)(cmd, args)
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return checkInteractive()
			}

			return checkCommand(cmd.Context(), args[0])
		},
	}
)

func init() {
	checkCmd.Flags().BoolVarP(&interactive, "interactive", "n", false, "Interactive mode. The password is read from a masked prompt")
	checkCmd.Flags().BoolVar(&offline, "offline", false, "Skip the breach check")

	rootCmd.AddCommand(checkCmd)
}

func checkCommand(parent context.Context, password string) error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	client := breachClient()
	if client != nil {
		defer client.Close()
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	estimate := strength.Evaluate(password)

	var breach hibp.Result
	if client != nil {
		breach = client.Check(ctx, password)
	}

	logReport(report.New(estimate, breach))
	return nil
}

func checkInteractive() error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	client := breachClient()
	if client != nil {
		defer client.Close()
	}

	prompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(input string) error {
			if len(input) == 0 {
				return errors.New("please enter a password")
			}
			return nil
		},
	}

	log.Info().Msgf("running interactive session. ^C to exit")
	var latest hibp.Latest
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for {
		password, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				log.Info().Msgf("goodbye")
			} else {
				log.Error().Err(err).Msgf("error during interactive session")
			}
			// No return of the error to avoid the default cobra error message
			return nil
		}

		estimate := strength.Evaluate(password)
		log.Info().Msg(report.New(estimate, hibp.Result{}).Summary())

		if client == nil {
			logReport(report.New(estimate, hibp.Result{}))
			continue
		}

		// The check runs while the next password is typed. A newer entry cancels it and
		// its late result is dropped.
		checkCtx, token := latest.Begin(ctx)
		go func(password string, estimate strength.Estimate) {
			result := client.Check(checkCtx, password)
			if latest.Commit(token, result) {
				logReport(report.New(estimate, result))
			}
		}(password, estimate)
	}
}

func logReport(r report.Report) {
	for _, line := range r.Lines() {
		log.Info().Msg(line)
	}
}
