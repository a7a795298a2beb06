package cmdhelper

import (
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// Writer returns the output writer of cmd, inherited from the closest
// ancestor setting one, default to os.Stdout.
func Writer(cmd *cli.Command) io.Writer {
	for _, c := range cmd.Lineage() {
		if c.Writer != nil {
			return c.Writer
		}
	}
	return os.Stdout
}

// ErrWriter returns the error writer of cmd, inherited from the closest
// ancestor setting one, default to os.Stderr.
func ErrWriter(cmd *cli.Command) io.Writer {
	for _, c := range cmd.Lineage() {
		if c.ErrWriter != nil {
			return c.ErrWriter
		}
	}
	return os.Stderr
}

// Reader returns the input reader of cmd, inherited from the closest
// ancestor setting one, default to os.Stdin.
func Reader(cmd *cli.Command) io.Reader {
	for _, c := range cmd.Lineage() {
		if c.Reader != nil {
			return c.Reader
		}
	}
	return os.Stdin
}
