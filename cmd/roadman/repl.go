package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"roadman/interpreter-go/pkg/driver"
	"roadman/interpreter-go/pkg/interpreter"
)

func newReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return repl(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

// repl reads a line at a time and evaluates it against one persistent
// interpreter, so bindings from earlier lines stay visible. Errors are
// reported and the session continues.
func repl(in io.Reader, stdout, stderr io.Writer) error {
	interp := interpreter.New(interpreter.WithStdout(stdout))

	fmt.Fprintln(stdout, "Roadman REPL v0.1")
	fmt.Fprintln(stdout, "Type 'exit()' or press Ctrl+D to exit.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(stdout, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(stdout)
			return scanner.Err()
		}
		line := scanner.Text()
		if strings.EqualFold(strings.TrimSpace(line), "exit()") {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := driver.RunSource(interp, line); err != nil {
			fmt.Fprintln(stderr, err)
		}
	}
}
