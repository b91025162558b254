package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	exitOK    = 0
	exitFatal = 1
	exitUsage = 2
)

// A fatalError is a failure of the load itself, as opposed to a usage error.
type fatalError struct {
	err error
}

func (e *fatalError) Error() string { return e.err.Error() }
func (e *fatalError) Unwrap() error { return e.err }

func fatal(err error) error {
	if err == nil {
		return nil
	}
	return &fatalError{err: err}
}

var svdloadCmd = &cobra.Command{
	Use:   "svdload",
	Short: "Annotate a program with the peripherals of an SVD file",
	Long: `svdload reads a CMSIS System View Description and creates memory blocks,
register structures and labels for every peripheral it describes. The result
can be written as a Ghidra script, a C header or a linker script fragment.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// glog registers its flags on the standard flag set. cobra picks up
	// pflag.CommandLine as persistent flags of the root command.
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	flag.Set("logtostderr", "true")

	svdloadCmd.AddCommand(loadCmd, regionsCmd, infoCmd, envCmd)
}

func exitCode(err error) int {
	var f *fatalError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &f):
		return exitFatal
	default:
		return exitUsage
	}
}

func main() {
	err := svdloadCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "svdload:", err)
	}
	glog.Flush()
	os.Exit(exitCode(err))
}
