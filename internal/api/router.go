// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"github.com/alvinbaena/pwd-strength/pkg/generator"
	"github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"net/http"
)

type Options struct {
	// Checker may be nil, breach checks are then reported as not checked.
	Checker   BreachChecker
	Generator *generator.Generator
	Registry  *prometheus.Registry
}

// NewRouter builds the local API. It is the adapter a web page talks to; every handler
// returns plain report data.
func NewRouter(opts Options) *gin.Engine {
	if opts.Generator == nil {
		opts.Generator = generator.New(nil)
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	metrics := NewMetrics(opts.Registry)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestId())
	router.Use(logger.SetLogger(
		logger.WithLogger(func(c *gin.Context, z zerolog.Logger) zerolog.Logger {
			return zerolog.New(gin.DefaultWriter).With().Timestamp().Str("requestId", c.GetString("requestId")).Logger()
		}),
		logger.WithSkipPath([]string{"/health", "/metrics"}),
	))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	v1.Use(noStore())

	RegisterCheckApi(v1.Group("/check"), opts.Checker, metrics)
	RegisterGenerateApi(v1, opts.Generator, metrics)

	return router
}
