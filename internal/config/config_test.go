// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package config

import (
	"github.com/alvinbaena/pwd-strength/pkg/hibp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, hibp.DefaultBaseURL, cfg.BreachApiUrl)
	assert.Equal(t, 8*time.Second, cfg.BreachTimeout)
	assert.True(t, cfg.BreachPadding)
	assert.Equal(t, int64(1024), cfg.CacheMaxEntries)
	assert.Equal(t, "pwd-strength/1.0", cfg.UserAgent)
	assert.False(t, cfg.Debug)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("BREACH_API_URL", "http://localhost:9999")
	t.Setenv("BREACH_TIMEOUT", "2s")
	t.Setenv("BREACH_RETRY_MAX", "1")
	t.Setenv("BREACH_PADDING", "false")
	t.Setenv("CACHE_MAX_ENTRIES", "0")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999", cfg.BreachApiUrl)
	assert.Equal(t, 2*time.Second, cfg.BreachTimeout)
	assert.Equal(t, 1, cfg.BreachRetryMax)
	assert.False(t, cfg.BreachPadding)
	assert.Equal(t, int64(0), cfg.CacheMaxEntries)
	assert.True(t, cfg.Debug)

	opts := cfg.HibpOptions()
	assert.Equal(t, "http://localhost:9999", opts.BaseURL)
	assert.Equal(t, 1, opts.RetryMax)
	assert.False(t, opts.Padding)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("BREACH_API_URL", "not a url")
	t.Setenv("BREACH_RETRY_MAX", "50")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BREACH_API_URL: This field must be an absolute URL")
	assert.Contains(t, err.Error(), "BREACH_RETRY_MAX: This field must be at most 10")
}
