package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"omibyte.io/svdload/builder"
	"omibyte.io/svdload/export"
	"omibyte.io/svdload/program"
	"omibyte.io/svdload/svd"
	"omibyte.io/svdload/targets"
)

var (
	loadOpts = struct {
		program   string
		targets   string
		namespace string
		emit      []string
		strict    bool
	}{}

	loadCmd = &cobra.Command{
		Use:   "load [file.svd]",
		Short: "Load an SVD file into a program",
		Long: `Load an SVD file into an empty program, or into the program read from an ELF
image given with --program, and optionally write the result with --emit.
The file is prompted for when it is not given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := builder.Environment()

			emits, err := parseEmits(loadOpts.emit, env.Value("SVDLOAD_EMIT"))
			if err != nil {
				return err
			}

			table, err := targetTable(loadOpts.targets, env)
			if err != nil {
				return err
			}

			var path string
			if len(args) > 0 {
				path = args[0]
			} else if path, err = promptPath(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Loading SVD file...")
			device, err := svd.Open(path)
			if err != nil {
				return fatal(err)
			}
			fmt.Fprintln(out, "\tDone!")

			db := program.NewDatabase(device.Name)
			if len(loadOpts.program) > 0 {
				if db, err = program.OpenELF(loadOpts.program); err != nil {
					return fatal(err)
				}
			}

			report, err := builder.Build(cmd.Context(), device, db, builder.Options{
				Targets:     table,
				Namespace:   loadOpts.namespace,
				Strict:      loadOpts.strict,
				Progress:    out,
				Environment: env,
			})
			if err != nil {
				return fatal(err)
			}
			if err := report.Summary(out); err != nil {
				return fatal(err)
			}

			for _, e := range emits {
				if err := e.write(db); err != nil {
					return fatal(err)
				}
				glog.Infof("wrote %s to %s", e.kind, e.path)
			}
			return nil
		},
	}
)

func init() {
	loadCmd.Flags().StringVarP(&loadOpts.program, "program", "p", "", "ELF image to load the peripherals into")
	loadCmd.Flags().StringVar(&loadOpts.targets, "targets", "", "YAML file with additional device tweaks ($SVDLOAD_TARGETS)")
	loadCmd.Flags().StringVarP(&loadOpts.namespace, "namespace", "n", "", "namespace of the peripheral labels ($SVDLOAD_NAMESPACE)")
	loadCmd.Flags().StringArrayVarP(&loadOpts.emit, "emit", "e", nil, "write kind=path, kind is one of "+strings.Join(export.Names(), ", "))
	loadCmd.Flags().BoolVar(&loadOpts.strict, "strict", false, "stop at the first failure")
}

// targetTable returns the built-in tweak table merged with the YAML file named
// by path or by $SVDLOAD_TARGETS.
func targetTable(path string, env builder.Env) (targets.Targets, error) {
	table := targets.All()
	if path = firstNonEmpty(path, env.Value("SVDLOAD_TARGETS")); len(path) > 0 {
		extra, err := targets.Load(path)
		if err != nil {
			return nil, fatal(err)
		}
		table = table.Merge(extra)
	}
	return table, nil
}

// An emit is an export requested on the command line.
type emit struct {
	kind     string
	path     string
	exporter export.Exporter
}

// parseEmits parses kind=path pairs from the flag values and from a comma
// separated environment value.
func parseEmits(values []string, fromEnv string) ([]emit, error) {
	if len(fromEnv) > 0 {
		values = append(values, strings.Split(fromEnv, ",")...)
	}

	var result []emit
	for _, value := range values {
		kind, path, ok := strings.Cut(strings.TrimSpace(value), "=")
		if !ok || len(kind) == 0 || len(path) == 0 {
			return nil, fmt.Errorf("invalid --emit %q, expected kind=path", value)
		}
		exporter, err := export.ByName(kind)
		if err != nil {
			return nil, err
		}
		result = append(result, emit{kind: kind, path: path, exporter: exporter})
	}
	return result, nil
}

func (e emit) write(db *program.Database) (err error) {
	f, err := os.Create(e.path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return e.exporter.Export(f, db)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	return ""
}
