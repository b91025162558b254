package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"omibyte.io/svdload/builder"
	"omibyte.io/svdload/svd"
)

var infoTargets string

var infoCmd = &cobra.Command{
	Use:   "info file.svd",
	Short: "Print a summary of a device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := targetTable(infoTargets, builder.Environment())
		if err != nil {
			return err
		}
		device, err := svd.Open(args[0])
		if err != nil {
			return fatal(err)
		}

		var registers, empty int
		for i := range device.Peripherals.Elements {
			n := len(device.Peripherals.Elements[i].FlatRegisters(device.DefaultRegisterSize()))
			registers += n
			if n == 0 {
				empty++
			}
		}

		tweaks := "none"
		if target, ok := table.Lookup(device); ok {
			var suffixes []string
			for _, alias := range target.Aliases {
				suffixes = append(suffixes, alias.Suffix)
			}
			tweaks = fmt.Sprintf("%s (aliases: %s)", target.Series, strings.Join(suffixes, ", "))
		}

		t := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 1, ' ', 0)
		fmt.Fprintf(t, "Device:\t%s\n", device.Name)
		fmt.Fprintf(t, "Vendor:\t%s\n", device.Vendor)
		fmt.Fprintf(t, "Series:\t%s\n", device.Series)
		fmt.Fprintf(t, "CPU:\t%s\n", device.CPU.Name)
		fmt.Fprintf(t, "Revision:\t%s\n", device.CPU.Revision)
		fmt.Fprintf(t, "Endian:\t%s\n", device.CPU.Endian)
		fmt.Fprintf(t, "Architecture:\t%v-bit\n", device.BitWidth)
		fmt.Fprintf(t, "Addressable Width:\t%v-bit\n", device.AddressableWidth)
		fmt.Fprintf(t, "Register Size:\t%v-bit\n", device.DefaultRegisterSize())
		fmt.Fprintf(t, "FPU:\t%v\n", device.CPU.FPUPresent)
		fmt.Fprintf(t, "Peripherals:\t%d (%d without registers)\n", len(device.Peripherals.Elements), empty)
		fmt.Fprintf(t, "Registers:\t%d\n", registers)
		fmt.Fprintf(t, "Tweaks:\t%s\n", tweaks)
		return t.Flush()
	},
}

func init() {
	infoCmd.Flags().StringVar(&infoTargets, "targets", "", "YAML file with additional device tweaks ($SVDLOAD_TARGETS)")
}
