package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/recipeway/recipeway/internal/recipe"
	"github.com/recipeway/recipeway/internal/sync"
)

func newListCmd() *cobra.Command {
	var search string
	var categories []string
	var noRefresh bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the recipes visible to you",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			filters := func() sync.FilterSnapshot {
				return sync.FilterSnapshot{Search: search, Categories: categories}
			}
			refreshed := make(chan []recipe.Record, 1)
			coord := sync.NewCoordinator(a.cache, a.client, filters, func(records []recipe.Record, f sync.FilterSnapshot) {
				refreshed <- f.Apply(records)
			})

			records, rec, err := coord.Load(ctx, a.cfg.User)
			if err != nil {
				return err
			}
			printRecipes(cmd.OutOrStdout(), filters().Apply(records))

			if rec == nil {
				return nil
			}
			if noRefresh {
				rec.Cancel()
				return nil
			}

			select {
			case <-rec.Done():
				if rec.Changed() {
					select {
					case records := <-refreshed:
						fmt.Fprintln(cmd.OutOrStdout(), "\nupdated from the service:")
						printRecipes(cmd.OutOrStdout(), records)
					default:
					}
				}
			case <-time.After(a.cfg.Timeout):
				rec.Cancel()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "show only recipes containing this text")
	cmd.Flags().StringArrayVarP(&categories, "category", "c", nil, "show only recipes in every given category")
	cmd.Flags().BoolVar(&noRefresh, "no-refresh", false, "serve the cache only, skip the background refresh")
	return cmd
}

func printRecipes(w io.Writer, records []recipe.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "no recipes")
		return
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.ID, r.Title, strings.Join(r.Categories, ", "), r.Owner})
	}
	fmt.Fprint(w, renderTable([]string{"ID", "Title", "Categories", "Owner"}, rows))
}

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show the categories present in your recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			coord := sync.NewCoordinator(a.cache, a.client, nil, nil)
			if _, rec, err := coord.Load(ctx, a.cfg.User); err != nil {
				return err
			} else if rec != nil {
				rec.Cancel()
			}

			snap, err := a.cache.Get(ctx, a.cfg.User)
			if err != nil {
				return err
			}
			for _, c := range snap.Categories {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [file]",
		Short: "Send raw recipe text for extraction and save the result",
		Long:  "Reads free-form recipe text from a file or stdin, submits it for extraction, and appends the structured recipe to your collection.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			var text []byte
			if len(args) == 1 {
				text, err = os.ReadFile(args[0])
			} else {
				text, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}
			if strings.TrimSpace(string(text)) == "" {
				return errors.New("no recipe text given")
			}

			coord := sync.NewCoordinator(a.cache, a.client, nil, nil)
			rec, err := coord.Create(ctx, a.cfg.User, string(text))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %q (%s)\n", rec.Title, rec.ID)
			return nil
		},
	}
}

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a recipe as text in $EDITOR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			coord := sync.NewCoordinator(a.cache, a.client, nil, nil)
			records, rec, err := coord.Load(ctx, a.cfg.User)
			if err != nil {
				return err
			}
			if rec != nil {
				rec.Cancel()
			}

			var current *recipe.Record
			for i := range records {
				if records[i].ID == args[0] {
					current = &records[i]
					break
				}
			}
			if current == nil {
				return fmt.Errorf("no recipe with id %s", args[0])
			}

			text, err := editInEditor(ctx, a.cfg.Editor, recipe.Encode(*current))
			if err != nil {
				return err
			}

			edited := recipe.Decode(text)
			edited.ID = current.ID
			edited.Owner = current.Owner
			if err := edited.Validate(); err != nil {
				return fmt.Errorf("not saved: %w", err)
			}

			saved, err := coord.Update(ctx, a.cfg.User, edited)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %q\n", saved.Title)
			return nil
		},
	}
}

// editInEditor round-trips text through the configured editor.
func editInEditor(ctx context.Context, editor, text string) (string, error) {
	f, err := os.CreateTemp("", "recipeway-*.txt")
	if err != nil {
		return "", err
	}
	defer os.Remove(f.Name())

	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	ed := exec.CommandContext(ctx, editor, f.Name())
	ed.Stdin = os.Stdin
	ed.Stdout = os.Stdout
	ed.Stderr = os.Stderr
	if err := ed.Run(); err != nil {
		return "", fmt.Errorf("run %s: %w", editor, err)
	}

	out, err := os.ReadFile(f.Name())
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			coord := sync.NewCoordinator(a.cache, a.client, nil, nil)
			if err := coord.Delete(ctx, a.cfg.User, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}
