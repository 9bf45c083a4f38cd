package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/laneplot/internal/cli"
	"github.com/matzehuels/laneplot/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := cli.New(os.Stderr, cli.LogInfo).RootCommand().ExecuteContext(ctx)
	os.Exit(exitCode(err))
}

// exitCode reports err and maps it to a process exit status: 0 on success,
// 130 on interrupt, 2 for bad input, 1 otherwise.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, context.Canceled):
		return 130 // Standard shell convention for SIGINT
	}
	fmt.Fprintln(os.Stderr, "laneplot:", err)
	if errors.IsInputError(err) {
		return 2
	}
	return 1
}
