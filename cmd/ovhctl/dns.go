package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sipico/ovh-api-client/internal/dns"
)

func newDNSCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dns",
		Short: "Manage DNS zone records",
	}

	cmd.AddCommand(newDNSListCmd(opts))
	cmd.AddCommand(newDNSCreateCmd(opts))
	cmd.AddCommand(newDNSDeleteCmd(opts))
	cmd.AddCommand(newDNSRefreshCmd(opts))
	return cmd
}

func newDNSListCmd(opts *options) *cobra.Command {
	var recordType, subDomain string

	cmd := &cobra.Command{
		Use:   "list <zone>",
		Short: "List the records of a zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient(cmd.Context())
			if err != nil {
				return err
			}

			repo := dns.NewRepository(client, args[0])
			records, err := repo.List(cmd.Context(), &dns.Filter{
				Type:      dns.RecordType(recordType),
				SubDomain: subDomain,
			})
			if err != nil {
				return err
			}

			for _, record := range records {
				fmt.Fprintln(cmd.OutOrStdout(), record)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&recordType, "type", "t", "", "Only list records of this type (A, AAAA, MX, TXT, ...)")
	cmd.Flags().StringVarP(&subDomain, "subdomain", "s", "", "Only list records of this subdomain")
	return cmd
}

func newDNSCreateCmd(opts *options) *cobra.Command {
	var subDomain string
	var ttl int64

	cmd := &cobra.Command{
		Use:   "create <zone> <type> <target>",
		Short: "Create a record and refresh the zone",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient(cmd.Context())
			if err != nil {
				return err
			}

			repo := dns.NewRepository(client, args[0])
			record, err := repo.Create(cmd.Context(), &dns.CreateRecordRequest{
				Type:      dns.RecordType(args[1]),
				SubDomain: subDomain,
				Target:    args[2],
				TTL:       ttl,
			})

			// A refresh failure still leaves the record created; show it
			// before reporting the error so the caller can commit later
			// with `dns refresh`.
			var refreshErr *dns.RefreshError
			if record != nil && (err == nil || errors.As(err, &refreshErr)) {
				fmt.Fprintln(cmd.OutOrStdout(), record)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&subDomain, "subdomain", "s", "", "Subdomain of the record (zone apex when empty)")
	cmd.Flags().Int64VarP(&ttl, "ttl", "T", 0, "TTL of the record in seconds (zone default when zero)")
	return cmd
}

func newDNSDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <zone> <id>",
		Short: "Delete a record and refresh the zone",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid record id %q: %w", args[1], err)
			}

			client, err := opts.newClient(cmd.Context())
			if err != nil {
				return err
			}

			repo := dns.NewRepository(client, args[0])
			return repo.Delete(cmd.Context(), id)
		},
	}
}

func newDNSRefreshCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh <zone>",
		Short: "Commit pending zone mutations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient(cmd.Context())
			if err != nil {
				return err
			}

			return dns.NewRepository(client, args[0]).Refresh(cmd.Context())
		},
	}
}
