// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"github.com/dgraph-io/ristretto"
	"time"
)

// RangeBytes is roughly the size of one padded range response.
const RangeBytes = 40 * 1024

// rangeCache keeps range responses by prefix. Responses are public data (every suffix
// sharing a prefix) so caching them leaks nothing about the password checked.
type rangeCache struct {
	c   *ristretto.Cache
	ttl time.Duration
}

func newRangeCache(entries int64, ttl time.Duration) (*rangeCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: entries * 10,
		MaxCost:     entries,
		BufferItems: 64,
		// one range is one unit of cost
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}

	return &rangeCache{c: c, ttl: ttl}, nil
}

func (r *rangeCache) get(prefix string) ([]byte, bool) {
	v, ok := r.c.Get(prefix)
	if !ok {
		return nil, false
	}

	body, ok := v.([]byte)
	return body, ok
}

func (r *rangeCache) set(prefix string, body []byte) {
	if r.ttl > 0 {
		r.c.SetWithTTL(prefix, body, 1, r.ttl)
	} else {
		r.c.Set(prefix, body, 1)
	}
	// make the entry visible to the next lookup
	r.c.Wait()
}

func (r *rangeCache) close() {
	r.c.Close()
}
