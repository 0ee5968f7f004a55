// Package run implements the one-shot run command.
package run

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	cmdcommon "github.com/jonesrussell/blog-indexer/cmd/common"
)

// errCriticalFailure makes a one-shot invocation exit nonzero when the
// run failed before producing useful progress. Quota exhaustion and
// per-URL failures do not trigger it.
var errCriticalFailure = errors.New("run failed")

// Command returns the run command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Discover and submit new posts once, then exit",
		Long: `Run one discovery-to-submission batch and exit. The exit code is 0
when the run produced a summary, including a "nothing to do" run and runs
with partial failures or a quota abort; it is nonzero only on a critical
failure that prevented any result.`,
		RunE: runOnce,
	}
}

// runOnce executes a single pipeline run.
func runOnce(cmd *cobra.Command, _ []string) error {
	deps, err := cmdcommon.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("initialize dependencies: %w", err)
	}

	summary := deps.Runner.Run(cmd.Context())

	if !summary.Succeeded() {
		return fmt.Errorf("%w: %s", errCriticalFailure, summary.CriticalFailure)
	}

	return nil
}
