// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"bufio"
	"bytes"
	"github.com/rs/zerolog/log"
	"strconv"
	"strings"
)

// FindSuffix scans a newline separated SUFFIX:COUNT listing for an exact, case sensitive
// suffix match and returns its count. A missing suffix is a count of 0, and so is a count
// that does not parse.
func FindSuffix(body []byte, suffix string) uint64 {
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		hash, count, found := strings.Cut(strings.TrimSpace(scanner.Text()), ":")
		if !found || strings.TrimSpace(hash) != suffix {
			continue
		}

		n, err := strconv.ParseUint(strings.TrimSpace(count), 10, 64)
		if err != nil {
			log.Debug().Err(err).Msg("malformed count in range response, using 0")
			return 0
		}
		return n
	}

	return 0
}
