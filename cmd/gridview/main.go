// Command gridview browses large CSV files in a virtualized grid: in the
// terminal, in a desktop window, or as a PNG snapshot.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/go-theft-auto/grid/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "gridview:", err)
		stop()
		os.Exit(1)
	}
}
