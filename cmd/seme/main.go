// Command seme looks up toki pona words in the linku dictionary.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Brian3647/nimi/internal/cli"
	"github.com/Brian3647/nimi/pkg/version"
)

func main() {
	err := run()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(extractExitCode(err))
}

// run executes the root command; Ctrl-C cancels an in-flight download.
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	return root.ExecuteContext(ctx)
}

// extractExitCode returns 0 for nil, the code carried by a *cli.ExitError,
// and 1 for every other error.
func extractExitCode(err error) int {
	return cli.ExitCode(err)
}
