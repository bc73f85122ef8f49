package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Inspect and complete NextCloud login handshakes",
	}
	loginCmd.AddCommand(newLoginListCommand(ctx))
	loginCmd.AddCommand(newLoginResolveCommand(ctx))
	return loginCmd
}

func newLoginListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List handshake tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureServices()
			if err != nil {
				return err
			}
			logins, err := svc.Logins.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(logins) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No login handshakes")
				return nil
			}

			rows := make([][]string, 0, len(logins))
			for _, l := range logins {
				user, resolved := "", "pending"
				if l.User != nil {
					user = l.User.Name
				}
				if l.ResolvedAt != nil {
					resolved = l.ResolvedAt.Format("2006-01-02 15:04")
				}
				rows = append(rows, []string{l.Token, l.CreatedAt.Format("2006-01-02 15:04"), user, resolved})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Token", "Started", "User", "Resolved"}, rows))
			return nil
		},
	}
}

func newLoginResolveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve TOKEN USER",
		Short: "Complete a pending handshake for a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.ensureServices()
			if err != nil {
				return err
			}
			login, err := svc.Logins.Resolve(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("resolve %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Login %s resolved for %s\n", login.Token, args[1])
			return nil
		},
	}
}
