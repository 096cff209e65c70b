// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"github.com/alvinbaena/pwd-strength/internal/util"
	"github.com/alvinbaena/pwd-strength/pkg/hibp"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"reflect"
	"strings"
	"time"
)

type Config struct {
	BreachApiUrl           string        `mapstructure:"BREACH_API_URL" validate:"required,url"`
	BreachTimeout          time.Duration `mapstructure:"BREACH_TIMEOUT" validate:"gt=0"`
	BreachRetryMax         int           `mapstructure:"BREACH_RETRY_MAX" validate:"gte=0,lte=10"`
	BreachPadding          bool          `mapstructure:"BREACH_PADDING"`
	BreachRateLimit        float64       `mapstructure:"BREACH_RATE_LIMIT" validate:"gte=0"`
	BreachFailureThreshold uint32        `mapstructure:"BREACH_FAILURE_THRESHOLD"`
	CacheMaxEntries        int64         `mapstructure:"CACHE_MAX_ENTRIES" validate:"gte=0"`
	CacheTTL               time.Duration `mapstructure:"CACHE_TTL" validate:"gte=0"`
	UserAgent              string        `mapstructure:"USER_AGENT" validate:"required"`
	Debug                  bool          `mapstructure:"DEBUG"`
}

// HibpOptions maps the configuration onto the range client options.
func (c Config) HibpOptions() hibp.Options {
	return hibp.Options{
		BaseURL:          c.BreachApiUrl,
		UserAgent:        c.UserAgent,
		Timeout:          c.BreachTimeout,
		RetryMax:         c.BreachRetryMax,
		Padding:          c.BreachPadding,
		RateLimit:        c.BreachRateLimit,
		FailureThreshold: c.BreachFailureThreshold,
		CacheEntries:     c.CacheMaxEntries,
		CacheTTL:         c.CacheTTL,
	}
}

func setDefaults(v *viper.Viper) {
	d := hibp.DefaultOptions()
	v.SetDefault("BREACH_API_URL", d.BaseURL)
	v.SetDefault("BREACH_TIMEOUT", d.Timeout)
	v.SetDefault("BREACH_RETRY_MAX", d.RetryMax)
	v.SetDefault("BREACH_PADDING", d.Padding)
	v.SetDefault("BREACH_RATE_LIMIT", d.RateLimit)
	v.SetDefault("BREACH_FAILURE_THRESHOLD", d.FailureThreshold)
	v.SetDefault("CACHE_MAX_ENTRIES", d.CacheEntries)
	v.SetDefault("CACHE_TTL", d.CacheTTL)
	v.SetDefault("USER_AGENT", d.UserAgent)
	v.SetDefault("DEBUG", false)
}

func bindEnvs(v *viper.Viper, iface interface{}, parts ...string) {
	ifv := reflect.ValueOf(iface)
	ift := reflect.TypeOf(iface)
	for i := 0; i < ift.NumField(); i++ {
		fv := ifv.Field(i)
		t := ift.Field(i)
		tv, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			continue
		}
		switch fv.Kind() {
		case reflect.Struct:
			bindEnvs(v, fv.Interface(), append(parts, tv)...)
		default:
			_ = v.BindEnv(strings.Join(append(parts, tv), "."))
		}
	}
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "url":
		return "This field must be an absolute URL"
	case "gt":
		return fmt.Sprintf("This field must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("This field must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("This field must be at most %s", fe.Param())
	}
	return fe.Error() // default error
}

// Load reads the configuration from the environment, and from a .env file in the working
// directory if there is one.
func Load() (config Config, err error) {
	if err = godotenv.Load(); err == nil {
		log.Debug().Msg("loaded environment from .env file")
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	// This is to not require a config file to unmarshal Envs in a struct
	// https://github.com/spf13/viper/issues/188#issuecomment-399884438
	config = Config{}
	bindEnvs(v, config)

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("error reading configuration: %w", err)
	}

	if err = validator.New().Struct(&config); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			var msgs []string
			for _, fe := range ve {
				msgs = append(msgs, fmt.Sprintf("%s: %s", util.ToScreamingSnakeCase(fe.Field()), msgForTag(fe)))
			}

			return config, errors.New(strings.Join(msgs, ". "))
		}

		return config, fmt.Errorf("error validating configuration from environment: %w", err)
	}

	return config, nil
}
