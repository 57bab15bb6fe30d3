package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "login [token]",
		Short: "Store the access token issued by the service",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if clear {
				if err := a.state.SetToken(ctx, ""); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "logged out")
				return nil
			}
			if len(args) != 1 {
				return fmt.Errorf("a token is required (or --clear)")
			}
			if err := a.state.SetToken(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "token stored")
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "forget the stored token")
	return cmd
}

func newFullscreenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fullscreen on|off",
		Short: "Set the fullscreen viewing preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			switch args[0] {
			case "on":
				return a.state.SetFullscreen(ctx, true)
			case "off":
				return a.state.SetFullscreen(ctx, false)
			default:
				return fmt.Errorf("expected on or off, got %q", args[0])
			}
		},
	}
}
