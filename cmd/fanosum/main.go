// Command fanosum identifies free sums, skew simplex sums and skew
// bipyramids of smooth Fano polytopes against a reference catalog.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/fanosum/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		// Flag parsing and argument count errors come straight from cobra.
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCommandError)
	}
	if !exitErr.Reported {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(exitErr.Code)
}
