package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"roadman/interpreter-go/pkg/driver"
	"roadman/interpreter-go/pkg/interpreter"
)

func newRunCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "run [script]",
		Short: "Run a Roadman script",
		Long: "Run a Roadman script. With no argument the entry script from the\n" +
			"nearest roadman.yml is used.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveScript(args)
			if err != nil {
				return err
			}
			if !watch {
				return runScript(path)
			}
			return watchScript(cmd.Context(), path)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "rerun the script when it changes")
	return cmd
}

// resolveScript picks the script to operate on: the explicit argument
// when given, otherwise the main entry of the nearest manifest.
func resolveScript(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	manifest, err := driver.FindManifest(".")
	if err != nil {
		if errors.Is(err, driver.ErrManifestNotFound) {
			return "", errors.New("no script given and no roadman.yml found")
		}
		return "", err
	}
	return manifest.MainPath(), nil
}

func runScript(path string) error {
	interp := interpreter.New(interpreter.WithStdout(os.Stdout))
	return driver.RunFile(interp, path)
}

// watchScript runs the script once, then again on every save. Each run
// gets a fresh interpreter so reruns never see stale bindings. Errors
// are reported and watching continues; only the watcher itself failing
// ends the loop.
func watchScript(ctx context.Context, path string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	rerun := func() {
		if err := runScript(path); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	rerun()

	err := driver.Watch(ctx, path, func() {
		fmt.Fprintf(os.Stderr, "-- %s changed, rerunning --\n", path)
		rerun()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
