package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"roadman/interpreter-go/pkg/driver"
)

func newTranspileCommand() *cobra.Command {
	var out string
	var watch bool

	cmd := &cobra.Command{
		Use:   "transpile [script]",
		Short: "Transpile a Roadman script to JavaScript",
		Long: "Transpile a Roadman script to JavaScript. With no argument the entry\n" +
			"script and output path from the nearest roadman.yml are used. With no\n" +
			"-o flag the JavaScript prints to stdout.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				manifest, err := driver.FindManifest(".")
				if err != nil {
					if errors.Is(err, driver.ErrManifestNotFound) {
						return errors.New("no script given and no roadman.yml found")
					}
					return err
				}
				path = manifest.MainPath()
				if out == "" {
					out = manifest.TranspileOutPath()
				}
			}

			if !watch {
				return transpileOnce(path, out)
			}
			return watchTranspile(cmd.Context(), path, out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write JavaScript to this file instead of stdout")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "retranspile when the script changes")
	return cmd
}

func transpileOnce(path, out string) error {
	js, err := driver.TranspileFile(path)
	if err != nil {
		return err
	}
	if out == "" {
		fmt.Println(js)
		return nil
	}
	if err := os.WriteFile(out, []byte(js+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	return nil
}

func watchTranspile(ctx context.Context, path, out string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	rerun := func() {
		if err := transpileOnce(path, out); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	rerun()

	err := driver.Watch(ctx, path, func() {
		fmt.Fprintf(os.Stderr, "-- %s changed, retranspiling --\n", path)
		rerun()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
