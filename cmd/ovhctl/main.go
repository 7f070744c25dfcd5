// Package main provides the ovhctl command line tool for managing OVH DNS
// records and email redirections through the signed REST API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/sipico/ovh-api-client/internal/metrics"
	"github.com/sipico/ovh-api-client/internal/ovh"
)

const version = "0.1.0"

// options holds the global flag values shared by all subcommands.
type options struct {
	config      string
	debug       bool
	metricsAddr string
}

// newClient builds the signed API client from the configured credentials
// file, wiring the debug logging transport and the metrics transport as
// requested by the global flags.
func (o *options) newClient(ctx context.Context) (*ovh.Client, error) {
	var opts []ovh.Option

	if o.debug {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, ovh.WithLogger(logger))
	}

	if o.metricsAddr != "" {
		if err := metrics.Init(prometheus.DefaultRegisterer); err != nil {
			return nil, err
		}
		opts = append(opts, ovh.WithHTTPClient(&http.Client{Transport: metrics.NewTransport(nil)}))
		go func() {
			if err := http.ListenAndServe(o.metricsAddr, metrics.Handler()); err != nil {
				fmt.Fprintf(os.Stderr, "metrics listener failed: %v\n", err)
			}
		}()
	}

	return ovh.NewClientFromFile(ctx, o.config, opts...)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "ovhctl",
		Short:   "Manage OVH email redirections and DNS records",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.config, "config", "c", "ovh.conf", "File containing API credentials")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Log HTTP requests and responses to stderr")
	cmd.PersistentFlags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while the command runs")

	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newCreateCmd(opts))
	cmd.AddCommand(newDeleteCmd(opts))
	cmd.AddCommand(newDNSCmd(opts))
	return cmd
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
