// Command cyclic is the field operations interpreter CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fieldworks/cyclic/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
