package bench

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteReport prints results as an aligned table.
func WriteReport(w io.Writer, results []Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "impl\tpushes\telapsed\tpushes/s\tp50\tp99\tmax\treads\tmisses\t")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.0f\t%s\t%s\t%s\t%d\t%d\t\n",
			r.Impl, r.Pushes, r.Elapsed.Round(1000), r.Throughput, r.P50, r.P99, r.Max, r.Reads, r.Misses)
	}
	return tw.Flush()
}
