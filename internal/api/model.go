// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package api

import "github.com/alvinbaena/pwd-strength/pkg/strength"

type strengthRequest struct {
	Password string `json:"password" binding:"required"`
}

type passwordRequest struct {
	Password string `json:"password" binding:"required"`
	// Breach defaults to true when missing.
	Breach *bool `json:"breach"`
}

type generateRequest struct {
	Length int `form:"length" binding:"omitempty,min=4,max=256"`
}

type generateResponse struct {
	Password string            `json:"password"`
	Length   int               `json:"length"`
	Strength strength.Estimate `json:"strength"`
}
