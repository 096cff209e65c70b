// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"errors"
	"github.com/alvinbaena/pwd-strength/internal/report"
	"github.com/alvinbaena/pwd-strength/pkg/generator"
	"github.com/alvinbaena/pwd-strength/pkg/hibp"
	"github.com/alvinbaena/pwd-strength/pkg/strength"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"net/http"
	"time"
)

// BreachChecker is the part of the range client the API needs.
type BreachChecker interface {
	Check(ctx context.Context, password string) hibp.Result
}

type checkApi struct {
	checker BreachChecker
	metrics *Metrics
}

func (q *checkApi) checkStrength(c *gin.Context) {
	var req strengthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	estimate := strength.Evaluate(req.Password)
	q.metrics.observeEstimate(estimate)

	c.JSON(http.StatusOK, report.New(estimate, hibp.Result{}))
}

func (q *checkApi) checkPassword(c *gin.Context) {
	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	estimate := strength.Evaluate(req.Password)
	q.metrics.observeEstimate(estimate)

	var breach hibp.Result
	if q.checker != nil && (req.Breach == nil || *req.Breach) {
		start := time.Now()
		breach = q.checker.Check(c.Request.Context(), req.Password)
		q.metrics.observeBreach(breach, time.Since(start))

		if breach.Status == hibp.Failed {
			log.Warn().Err(breach.Err).Msg("breach check could not complete")
		}
	}

	c.JSON(http.StatusOK, report.New(estimate, breach))
}

func RegisterCheckApi(group *gin.RouterGroup, checker BreachChecker, metrics *Metrics) {
	q := &checkApi{checker: checker, metrics: metrics}

	group.POST("/strength", q.checkStrength)
	group.POST("/password", q.checkPassword)
}

type generateApi struct {
	gen     *generator.Generator
	metrics *Metrics
}

func (g *generateApi) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	length := req.Length
	if length == 0 {
		length = generator.DefaultLength
	}

	pwd, err := g.gen.Generate(length)
	if err != nil {
		if errors.Is(err, generator.ErrLengthTooShort) || errors.Is(err, generator.ErrLengthTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		log.Error().Err(err).Msg("error generating password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	g.metrics.Generated.Inc()
	c.JSON(http.StatusOK, generateResponse{
		Password: pwd,
		Length:   len(pwd),
		Strength: strength.Evaluate(pwd),
	})
}

func RegisterGenerateApi(group *gin.RouterGroup, gen *generator.Generator, metrics *Metrics) {
	g := &generateApi{gen: gen, metrics: metrics}

	group.GET("/generate", g.generate)
}
