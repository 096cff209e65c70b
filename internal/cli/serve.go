// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"github.com/alvinbaena/pwd-strength/internal/api"
	"github.com/alvinbaena/pwd-strength/internal/util"
	"github.com/alvinbaena/pwd-strength/pkg/generator"
	"github.com/gin-gonic/gin"
	"github.com/likexian/selfca"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the local API used by the password strength page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCommand()
		},
	}
)

func init() {
	serveCmd.Flags().BoolVar(&selfTLS, "self-tls", false,
		"If the server should use a self-signed certificate when starting. The certificate is renewed on each server restart")
	serveCmd.Flags().StringVar(&tlsCert, "tls-cert", "", "Path to the PEM encoded TLS certificate to be used by the server")
	serveCmd.Flags().StringVar(&tlsKey, "tls-key", "", "Path to the PEM encoded TLS private key to be used by the server")
	serveCmd.Flags().StringVarP(&bindAddr, "bind", "b", "127.0.0.1", "Address the server listens on")
	serveCmd.Flags().Uint16VarP(&port, "port", "p", 3100, "Port to be used by the server")
	serveCmd.Flags().StringSliceVar(&corsOrigins, "cors-origin", nil, "Origins allowed to call the API from a browser")
	serveCmd.Flags().BoolVar(&offline, "offline", false, "Disable breach checks")

	rootCmd.AddCommand(serveCmd)
}

func serveCommand() error {
	util.ApplyCliSettings(verbose, profile, pprofPort)
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	opts := api.Options{Generator: generator.New(nil), Registry: reg}
	client := breachClient()
	if client != nil {
		defer client.Close()
		opts.Checker = client
	}

	var handler http.Handler = api.NewRouter(opts)
	if len(corsOrigins) > 0 {
		handler = api.WithCors(handler, corsOrigins)
	}

	srvAddr := net.JoinHostPort(bindAddr, fmt.Sprintf("%d", port))
	srv := &http.Server{
		Addr:              srvAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if tlsCert == "" && tlsKey == "" && selfTLS {
		config, err := selfSignedConfig()
		if err != nil {
			return err
		}
		srv.TLSConfig = config
	}

	go func() {
		var err error
		switch {
		case tlsCert != "" && tlsKey != "":
			log.Info().Msgf("starting TLS server on address: %s", srvAddr)
			err = srv.ListenAndServeTLS(tlsCert, tlsKey)
		case srv.TLSConfig != nil:
			log.Warn().Msgf("using auto self-signed certificate for TLS. This is not recommended for production. Please consider using your own certificates.")
			log.Info().Msgf("starting TLS server on address: %s", srvAddr)
			// service connections with tls config, no need to pass files
			err = srv.ListenAndServeTLS("", "")
		case isLoopback(bindAddr):
			log.Info().Msgf("starting server on loopback address: %s", srvAddr)
			err = srv.ListenAndServe()
		default:
			log.Fatal().Msg("server requires TLS configuration when not bound to a loopback address. " +
				"Please use either the --self-tls flag or set a certificate with the --tls-cert and --tls-key flags")
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("error starting server")
		}
	}()

	gracefulShutdown(srv)
	return nil
}

func selfSignedConfig() (*tls.Config, error) {
	caConfig := selfca.Certificate{
		IsCA:      true,
		KeySize:   2048,
		NotBefore: time.Now(),
		// 30 day self-signed cert.
		NotAfter: time.Now().Add(time.Duration(30*24) * time.Hour),
	}

	certificate, key, err := selfca.GenerateCertificate(caConfig)
	if err != nil {
		return nil, fmt.Errorf("error generating auto self-signed certificate: %w", err)
	}

	pair, err := tls.X509KeyPair(
		pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certificate}),
		pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}),
	)
	if err != nil {
		return nil, fmt.Errorf("error using auto self-signed certificate: %w", err)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{pair},
		MinVersion:   tls.VersionTLS12,
	}, nil
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}

	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func gracefulShutdown(srv *http.Server) {
	// Wait for interrupt signal to gracefully shut down the server with
	// a timeout.
	quit := make(chan os.Signal, 1)
	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall. SIGKILL but can't be a catch, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server exiting...")
}
