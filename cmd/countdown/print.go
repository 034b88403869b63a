package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/countdown-tracker/engine"
)

// printResult is the --json output of the print command
type printResult struct {
	Target   time.Time        `json:"target"`
	Expired  bool             `json:"expired"`
	Snapshot *engine.Snapshot `json:"snapshot,omitempty"`
}

func newPrintCommand(opts *options) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the current remaining time once and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			target, err := cfg.ParsedTarget()
			if err != nil {
				return err
			}

			res, err := snapshotOnce(target, engine.NewMonotonicTimeProvider())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			if res.Expired {
				_, err = fmt.Fprintln(out, "expired")
				return err
			}
			_, err = fmt.Fprintln(out, res.Snapshot.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

// snapshotOnce runs a single synchronous tick and stops the handle
func snapshotOnce(target engine.Target, clock engine.TimeProvider) (printResult, error) {
	res := printResult{Target: target.Time().UTC()}

	eng := engine.New(engine.NewFrameQueue(),
		engine.WithTimeProvider(clock),
		engine.WithExpireHandler(func(*engine.Handle) { res.Expired = true }),
	)
	h, err := eng.Start(target, func(s engine.Snapshot) { res.Snapshot = &s })
	if err != nil {
		return res, err
	}
	h.Stop()
	return res, nil
}
