// Command cyclebench runs a program image on the reference processor model
// and checks architectural state at scheduled checkpoints.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/cyclebench/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
