package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"omibyte.io/svdload/memmap"
	"omibyte.io/svdload/svd"
)

var regionsCmd = &cobra.Command{
	Use:   "regions file.svd",
	Short: "Print the peripheral memory regions",
	Long:  "Print one region per peripheral followed by the merged regions the load would create.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		device, err := svd.Open(args[0])
		if err != nil {
			return fatal(err)
		}

		regions, errs := memmap.FromDevice(device)
		for _, err := range errs {
			glog.Warning(err)
		}

		t := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 1, ' ', 0)
		fmt.Fprintf(t, "Original regions:\n")
		writeRegions(t, regions)
		fmt.Fprintf(t, "Reduced regions:\n")
		writeRegions(t, memmap.Reduce(regions))
		return t.Flush()
	},
}

func writeRegions(t *tabwriter.Writer, regions []memmap.Region) {
	for _, r := range regions {
		fmt.Fprintf(t, "\t%s\t%#08x\t%#08x\t%#x\n", r.Name(), r.Start, r.End, r.Len())
	}
}
