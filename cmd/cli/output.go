package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"amphorank/app"
	model "amphorank/domain/ranking"
	"amphorank/domain/specimen"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeReportTable(w io.Writer, report *app.Report) error {
	fmt.Fprintf(w, "Run %s  seed %d  %d selected, %d ranked, %d excluded\n\n",
		report.RunID, report.Seed, len(report.Selected), len(report.Result.Entries), len(report.Excluded))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tSPECIMEN\tSCORE\tRECT\tHEX\tHOLD\tDROP\tQUALITY\tRECT MPa\tHEX MPa\tHOLD MPa\tDROP MPa\tVOL EFF")
	for _, e := range report.Result.Entries {
		ranks := make([]string, len(specimen.Protocols))
		for i, p := range specimen.Protocols {
			ranks[i] = subRank(e.SubRanks.Get(p))
		}
		fmt.Fprintf(tw, "%d\t%s\t%.4f\t%s\t%.2f\t%s\t%s\t%.3f\t%.3f\t%.4g\n",
			e.OverallRank, e.Identity, e.OverallScore,
			strings.Join(ranks, "\t"),
			e.Quality,
			estimate(e.Raw.Rect), estimate(e.Raw.Hex),
			e.Raw.HoldTensile, e.Raw.DropCompressive, e.Raw.VolumeEfficiency)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	refs := report.Result.ReferenceLoads
	fmt.Fprintf(w, "\nReference loads: rect %.1f N (%s), hex %.1f N (%s)\n",
		refs.Rect.Load, refs.Rect.Source, refs.Hex.Load, refs.Hex.Source)
	fmt.Fprintln(w, "* interpolated, ** extrapolated")

	if len(report.Excluded) > 0 {
		fmt.Fprintln(w, "\nExcluded:")
		for _, ex := range report.Excluded {
			fmt.Fprintf(w, "  %s: missing %s\n", ex.Identity, protocols(ex.MissingProtocols))
		}
	}
	return nil
}

func subRank(r *int) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *r)
}

func estimate(e model.Estimate) string {
	switch e.Kind {
	case model.EstimateInterpolated:
		return fmt.Sprintf("%.3f*", e.Value)
	case model.EstimateExtrapolated:
		return fmt.Sprintf("%.3f**", e.Value)
	case model.EstimateNone:
		return "-"
	default:
		return fmt.Sprintf("%.3f", e.Value)
	}
}

func protocols(ps []specimen.Protocol) string {
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.String()
	}
	return strings.Join(names, ", ")
}
