// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/alvinbaena/pwd-strength/internal/config"
	"github.com/alvinbaena/pwd-strength/internal/util"
	"github.com/alvinbaena/pwd-strength/pkg/hibp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "pwdcheck [COMMAND] [OPTIONS]",
		Short: "Check password strength and breach status",
		Long: "Estimate the strength of a password, check it against the Pwned Passwords (haveibeenpwned.com) " +
			"range API without sending the password or its full hash, and generate strong random passwords.",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print more information on the processing")
	rootCmd.PersistentFlags().BoolVar(&profile, "profile", false, "Enable the profiling server (pprof) when running commands")
	rootCmd.PersistentFlags().Uint16Var(&pprofPort, "profile-port", 6060, "The port to use for the pprof server. Only used if the profile flag is set")
}

func Execute() error {
	return rootCmd.Execute()
}

// breachClient builds the range API client from the environment. A nil client means
// breach checks are off for this run.
func breachClient() *hibp.Client {
	if offline {
		log.Info().Msg("offline mode, breach checks are disabled")
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading configuration")
	}

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	opts := cfg.HibpOptions()
	if !util.CheckRam(uint64(opts.CacheEntries) * hibp.RangeBytes) {
		log.Warn().Msgf("consider lowering CACHE_MAX_ENTRIES from %d", opts.CacheEntries)
	}

	client, err := hibp.NewClient(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating breach API client")
	}

	return client
}
