// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

var (
	// root
	verbose bool
	// root
	profile bool
	// root
	pprofPort uint16
	// check, audit, serve
	offline bool
	// check
	interactive bool
	// generate
	length int
	// generate
	count int
	// audit
	inputFile string
	// audit
	threads int
	// serve
	selfTLS bool
	// serve
	tlsCert string
	// serve
	tlsKey string
	// serve
	bindAddr string
	// serve
	port uint16
	// serve
	corsOrigins []string
)
