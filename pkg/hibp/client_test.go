// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import (
	"context"
	"errors"
	"fmt"
	"github.com/sony/gobreaker"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

const decoySuffix = "0018A45C4D1DEF81644B74B0AB0D5F9C4C7"

// fakeRange serves a canned listing and records what it was asked.
type fakeRange struct {
	status   int
	body     string
	hits     int32
	path     atomic.Value
	padding  atomic.Value
	rawQuery atomic.Value
}

func (f *fakeRange) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&f.hits, 1)
	f.path.Store(r.URL.Path)
	f.padding.Store(r.Header.Get("Add-Padding"))
	f.rawQuery.Store(r.URL.RawQuery)

	if f.status != 0 && f.status != http.StatusOK {
		w.WriteHeader(f.status)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	_, _ = fmt.Fprint(w, f.body)
}

func testClient(t *testing.T, url string, mutate func(o *Options)) *Client {
	opts := DefaultOptions()
	opts.BaseURL = url
	opts.RetryMax = 0
	opts.CacheEntries = 0
	opts.FailureThreshold = 0
	if mutate != nil {
		mutate(&opts)
	}

	c, err := NewClient(opts)
	if err != nil {
		t.Fatalf("Should not fail creating client: %s", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestClient_Check(t *testing.T) {
	_, suffix := Split(Digest("password"))
	fake := &fakeRange{body: decoySuffix + ":3\r\n" + suffix + ":3\r\nFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF:0\r\n"}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	c := testClient(t, srv.URL, nil)
	res := c.Check(context.Background(), "password")

	if res.Status != Checked || res.Count != 3 {
		t.Errorf("Should be checked with a count of 3, got %+v", res)
	}
	if !res.Breached() {
		t.Errorf("Should be breached")
	}
	if p := fake.path.Load(); p != "/range/5BAA6" {
		t.Errorf("Should request the prefix range, requested %v", p)
	}
	if p := fake.padding.Load(); p != "true" {
		t.Errorf("Should ask for padding, got %v", p)
	}
}

func TestClient_Check_NotFound(t *testing.T) {
	fake := &fakeRange{body: decoySuffix + ":3\n"}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	res := testClient(t, srv.URL, nil).Check(context.Background(), "password")
	if !res.Clean() {
		t.Errorf("Should be checked with a count of 0, got %+v", res)
	}
}

func TestClient_Check_ServerError(t *testing.T) {
	fake := &fakeRange{status: http.StatusInternalServerError}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	res := testClient(t, srv.URL, nil).Check(context.Background(), "password")
	if res.Status != Failed {
		t.Fatalf("Should fail on a 500, got %+v", res)
	}
	if res.Clean() || res.Breached() {
		t.Errorf("A failed check should be neither clean nor breached")
	}

	var se *StatusError
	if !errors.As(res.Err, &se) || se.Code != http.StatusInternalServerError {
		t.Errorf("Should carry the status code, got %v", res.Err)
	}
}

func TestClient_Check_Retries(t *testing.T) {
	fake := &fakeRange{status: http.StatusServiceUnavailable}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	c := testClient(t, srv.URL, func(o *Options) { o.RetryMax = 2 })
	if res := c.Check(context.Background(), "password"); res.Status != Failed {
		t.Errorf("Should fail, got %+v", res)
	}
	if hits := atomic.LoadInt32(&fake.hits); hits != 3 {
		t.Errorf("Should try 3 times, tried %d", hits)
	}
}

func TestClient_Check_NetworkError(t *testing.T) {
	srv := httptest.NewServer(&fakeRange{})
	url := srv.URL
	srv.Close()

	res := testClient(t, url, nil).Check(context.Background(), "password")
	if res.Status != Failed || res.Err == nil {
		t.Errorf("Should fail with an error when the API is unreachable, got %+v", res)
	}
}

func TestClient_Check_Cancelled(t *testing.T) {
	srv := httptest.NewServer(&fakeRange{})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := testClient(t, srv.URL, nil).Check(ctx, "password")
	if res.Status != Failed {
		t.Errorf("A cancelled check should fail, got %+v", res)
	}
}

func TestClient_OnlyPrefixLeaves(t *testing.T) {
	digest := Digest("correct horse battery staple")
	_, suffix := Split(digest)

	var (
		mu   sync.Mutex
		seen strings.Builder
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		seen.WriteString(r.URL.String())
		for k, v := range r.Header {
			seen.WriteString(k + strings.Join(v, ""))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	testClient(t, srv.URL, nil).Check(context.Background(), "correct horse battery staple")

	mu.Lock()
	sent := seen.String()
	mu.Unlock()
	if strings.Contains(sent, suffix) || strings.Contains(sent, digest) {
		t.Errorf("Should never send more than the prefix")
	}
	if strings.Contains(sent, "horse") {
		t.Errorf("Should never send the password")
	}
}

func TestClient_Cache(t *testing.T) {
	fake := &fakeRange{body: decoySuffix + ":1\n"}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	c := testClient(t, srv.URL, func(o *Options) { o.CacheEntries = 16 })
	for i := 0; i < 3; i++ {
		if res := c.Check(context.Background(), "password"); res.Status != Checked {
			t.Fatalf("Should be checked, got %+v", res)
		}
	}

	if hits := atomic.LoadInt32(&fake.hits); hits != 1 {
		t.Errorf("Should hit the API once, hit it %d times", hits)
	}
	if st := c.Stats(); st.CacheHits != 2 || st.Requests != 1 {
		t.Errorf("Should count 1 request and 2 cache hits, got %+v", st)
	}
}

func TestClient_CircuitBreaker(t *testing.T) {
	fake := &fakeRange{status: http.StatusBadGateway}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	c := testClient(t, srv.URL, func(o *Options) { o.FailureThreshold = 2 })
	for i := 0; i < 2; i++ {
		c.Check(context.Background(), "password")
	}

	res := c.Check(context.Background(), "password")
	if !errors.Is(res.Err, gobreaker.ErrOpenState) {
		t.Errorf("Should fail fast with an open circuit, got %v", res.Err)
	}
	if hits := atomic.LoadInt32(&fake.hits); hits != 2 {
		t.Errorf("Should stop calling the API once open, called it %d times", hits)
	}
	if st := c.Stats(); st.Failures != 3 {
		t.Errorf("Should count 3 failures, got %d", st.Failures)
	}
}

func TestClient_Range_InvalidPrefix(t *testing.T) {
	c := testClient(t, "http://127.0.0.1:1", nil)
	for _, prefix := range []string{"", "5baa6", "5BAA", "5BAA61", "GGGGG"} {
		if _, err := c.Range(context.Background(), prefix); !errors.Is(err, ErrInvalidPrefix) {
			t.Errorf("Prefix %q should be rejected, got %v", prefix, err)
		}
	}
}

func TestNewClient_NegativeRetries(t *testing.T) {
	opts := DefaultOptions()
	opts.RetryMax = -1
	if _, err := NewClient(opts); err == nil {
		t.Errorf("Should fail with negative retries")
	}
}
