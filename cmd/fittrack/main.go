// CLI for the tracker against the configured store (see internal/config):
// onboard, preview targets, parse food text, show and edit today's meals.
// Usage: go run ./cmd/fittrack <command>
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lg/fittrack-go-api/internal/config"
	"lg/fittrack-go-api/internal/kvstore"
	"lg/fittrack-go-api/internal/tracker"
)

// openFunc returns a tracker and a close function for its store.
type openFunc func(ctx context.Context) (*tracker.Tracker, func() error, error)

// rootOptions holds global flags for all commands.
type rootOptions struct {
	format string // "text" | "json"
	open   openFunc
}

func main() {
	if err := newRootCommand(openFromConfig).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openFromConfig opens the store named by the environment / .env.
func openFromConfig(ctx context.Context) (*tracker.Tracker, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	store, err := kvstore.Open(ctx, cfg.Store)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	t := tracker.New(store,
		tracker.WithLocation(cfg.Location),
		tracker.WithKeyPrefix(cfg.KeyPrefix))
	return t, store.Close, nil
}

func newRootCommand(open openFunc) *cobra.Command {
	opts := &rootOptions{open: open}

	cmd := &cobra.Command{
		Use:           "fittrack",
		Short:         "Personal nutrition tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "text" && opts.format != "json" {
				return fmt.Errorf("invalid format %q: must be one of [text json]", opts.format)
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.format, "format", "text", "output format (json|text)")

	cmd.AddCommand(newOnboardCommand(opts))
	cmd.AddCommand(newTargetsCommand(opts))
	cmd.AddCommand(newParseCommand(opts))
	cmd.AddCommand(newDayCommand(opts))
	cmd.AddCommand(newAddMealCommand(opts))
	cmd.AddCommand(newDeleteMealCommand(opts))
	cmd.AddCommand(newResetCommand(opts))
	return cmd
}

// withTracker opens the tracker for the duration of fn.
func (o *rootOptions) withTracker(ctx context.Context, fn func(t *tracker.Tracker) error) error {
	t, closeStore, err := o.open(ctx)
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(t)
}

// print writes v as indented JSON, or calls text for the text format.
func (o *rootOptions) print(w io.Writer, v any, text func(w io.Writer)) error {
	if o.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text(w)
	return nil
}
