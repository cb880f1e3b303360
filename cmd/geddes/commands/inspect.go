package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arloliu/geddes"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Print a summary of decoded pattern files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInspect(cmd.OutOrStdout(), args)
		},
	}
}

func (a *app) runInspect(w io.Writer, files []string) error {
	opts, err := ReadOptions(a.v, a.logger)
	if err != nil {
		return err
	}

	for i, file := range files {
		res, err := geddes.DecodeFile(file, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeSummary(w, file, res)
	}

	return nil
}

func writeSummary(w io.Writer, file string, res geddes.Result) {
	fmt.Fprintf(w, "file:         %s\n", file)
	fmt.Fprintf(w, "format:       %s\n", res.Format)
	fmt.Fprintf(w, "decoder:      %s\n", res.Decoder)
	fmt.Fprintf(w, "compression:  %s\n", res.Compression)
	fmt.Fprintf(w, "size:         %d bytes\n", res.Size)
	fmt.Fprintf(w, "digest:       %016x\n", res.Digest)
	fmt.Fprintf(w, "points:       %d\n", res.Len())
	if res.Len() > 0 {
		lo, hi := res.Range()
		fmt.Fprintf(w, "x range:      %s .. %s\n", formatFloat(lo), formatFloat(hi))
	}
	fmt.Fprintf(w, "uncertainty:  %t\n", res.HasUncertainty())
	if res.Reconstruction != nil {
		fmt.Fprintf(w, "layout:       %s\n", res.Reconstruction)
	}
	if b := res.Bank; b != nil {
		fmt.Fprintf(w, "bank:         %s (%s points, %s records, %s, start %s step %s)\n",
			b.ID, b.Points, b.Records, b.BinType, formatFloat(b.Start), formatFloat(b.Step))
	}
}
