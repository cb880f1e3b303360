package commands

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arloliu/geddes/format"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported file extensions and compression wrappers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeFormats(cmd.OutOrStdout())
		},
	}
}

func writeFormats(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EXTENSION\tFORMAT\tDECODERS")
	for _, k := range format.Kinds() {
		fmt.Fprintf(tw, ".%s\t%s\t%s\n", k.Extension(), k, kindDecoders(k))
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "SUFFIX\tCOMPRESSION")
	compressions := format.Compressions()
	suffixes := make([]string, 0, len(compressions))
	for ext := range compressions {
		suffixes = append(suffixes, ext)
	}
	slices.Sort(suffixes)
	for _, ext := range suffixes {
		fmt.Fprintf(tw, ".%s\t%s\n", ext, compressions[ext])
	}

	return tw.Flush()
}

func kindDecoders(k format.Kind) string {
	switch k {
	case format.KindXY, format.KindXYE:
		return format.DecoderXY.String()
	case format.KindCSV:
		return format.DecoderCSV.String()
	case format.KindRASX:
		return format.DecoderRASX.String()
	case format.KindXRDML:
		return format.DecoderXRDML.String()
	case format.KindRAW:
		return format.DecoderGSAS.String() + ", " + format.DecoderBruker.String()
	default:
		return ""
	}
}
