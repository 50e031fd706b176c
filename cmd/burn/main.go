// Package main is the entry point for the burn CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tracel-ai/burn-cli/internal/cmd"
	oerrors "github.com/tracel-ai/burn-cli/internal/errors"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		// Only print if the command layer hasn't already printed it
		var exitErr *oerrors.ExitError
		if !errors.As(err, &exitErr) || !exitErr.Printed {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(oerrors.ExitCodeFromError(err))
	}
}
