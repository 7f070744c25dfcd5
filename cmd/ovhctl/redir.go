package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sipico/ovh-api-client/internal/mailredir"
)

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list <domain>",
		Short: "List all redirections for a given domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient(cmd.Context())
			if err != nil {
				return err
			}

			repo := mailredir.NewRepository(client, args[0])
			redirs, err := repo.List(cmd.Context(), nil)
			if err != nil {
				return err
			}

			for _, redir := range redirs {
				fmt.Fprintln(cmd.OutOrStdout(), redir)
			}
			return nil
		},
	}
}

func newCreateCmd(opts *options) *cobra.Command {
	var localCopy bool

	cmd := &cobra.Command{
		Use:   "create <domain> <from> <to>",
		Short: "Create a redirection",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient(cmd.Context())
			if err != nil {
				return err
			}

			repo := mailredir.NewRepository(client, args[0])
			body, err := repo.Create(cmd.Context(), &mailredir.CreateRequest{
				From:      args[1],
				To:        args[2],
				LocalCopy: localCopy,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(body))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&localCopy, "local-copy", "l", false, "Keep local copy of redirected messages")
	return cmd
}

func newDeleteCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <domain> <id>",
		Short: "Delete a redirection",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.newClient(cmd.Context())
			if err != nil {
				return err
			}

			repo := mailredir.NewRepository(client, args[0])
			return repo.Delete(cmd.Context(), args[1])
		},
	}
}
