package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recipeway/recipeway/internal/family"
)

func newFamilyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "family",
		Short: "Manage who shares recipes with whom",
	}
	cmd.AddCommand(newFamilyAddCmd())
	cmd.AddCommand(newFamilyApproveCmd())
	cmd.AddCommand(newFamilyRejectCmd())
	cmd.AddCommand(newFamilyRemoveCmd())
	cmd.AddCommand(newFamilyPendingCmd())
	return cmd
}

func newFamilyAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <email>",
		Short: "Share your recipes with a family member and request theirs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			err = a.registry.AddMember(ctx, a.cfg.User, args[0])
			if errors.Is(err, family.ErrUnknownMember) {
				return fmt.Errorf("no account exists for %s — double-check the address", args[0])
			}
			if err != nil {
				return reportConsentError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "invited %s; they can now see your recipes, and yours will show theirs once they approve\n", args[0])
			return nil
		},
	}
}

func newFamilyApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <email>",
		Short: "Accept a pending sharing request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.registry.Approve(ctx, a.cfg.User, args[0], family.Granted); err != nil {
				return reportConsentError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "now sharing with %s\n", args[0])
			return nil
		},
	}
}

func newFamilyRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <email>",
		Short: "Decline a pending sharing request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.registry.Approve(ctx, a.cfg.User, args[0], family.Revoked); err != nil {
				return reportConsentError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "declined %s\n", args[0])
			return nil
		},
	}
}

func newFamilyRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <email>",
		Short: "Stop sharing in both directions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.registry.Remove(ctx, a.cfg.User, args[0]); err != nil {
				return reportConsentError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}
}

func newFamilyPendingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "List sharing requests waiting for your decision",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			inbox, err := a.registry.PendingInbox(ctx, a.cfg.User)
			if err != nil {
				return err
			}
			if len(inbox) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no pending requests")
				return nil
			}
			rows := make([][]string, 0, len(inbox))
			for _, e := range inbox {
				rows = append(rows, []string{e.Other, string(e.Status)})
			}
			fmt.Fprint(cmd.OutOrStdout(), renderTable([]string{"From", "Status"}, rows))
			return nil
		},
	}
}

// reportConsentError makes a half-written consent pair visible as something
// to retry rather than a generic failure.
func reportConsentError(err error) error {
	var partial *family.PartialWriteError
	if errors.As(err, &partial) {
		return fmt.Errorf("%s only partly applied (%s succeeded, %s failed) — run the command again: %w",
			partial.Op, partial.Completed, partial.Failed, partial.Err)
	}
	return err
}
