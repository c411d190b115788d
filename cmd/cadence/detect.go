package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cadencefin/cadence/internal/model"
	"github.com/cadencefin/cadence/internal/recurring"
)

func detectCmd() *cobra.Command {
	opts := recurring.DefaultOptions()
	var aggregateBy string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect recurring commitments in the stored transactions",
		Long: `Analyze the stored transaction history and list the charges that look
like recurring commitments, ranked by total spend, together with counts of
why other candidates were rejected.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.AggregateBy = recurring.AggregationUnit(aggregateBy)

			detector, err := recurring.NewDetector(opts)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			result, err := detector.DetectWindow(ctx, store, time.Now())
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			printPatterns(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.MonthsBack, "months-back", opts.MonthsBack, "how many months of history to analyze")
	cmd.Flags().IntVar(&opts.MinOccurrences, "min-occurrences", opts.MinOccurrences, "minimum charges per merchant")
	cmd.Flags().Float64Var(&opts.MinConsistency, "min-consistency", opts.MinConsistency, "minimum interval-regularity score (0-1)")
	cmd.Flags().Float64Var(&opts.MinVariableAmount, "min-variable-amount", opts.MinVariableAmount, "minimum mean amount for variable-frequency patterns")
	cmd.Flags().StringVar(&aggregateBy, "aggregate-by", string(opts.AggregateBy), "charge granularity: day or transaction")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of a table")

	return cmd
}

func printPatterns(result *model.DetectionResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MERCHANT\tFREQUENCY\tAMOUNT\tFIXED\tCONSISTENCY\tCHARGES\tTOTAL\tNEXT EXPECTED")
	for i := range result.Patterns {
		p := &result.Patterns[i]
		next := "-"
		if d := p.NextExpectedDate(); !d.IsZero() {
			next = d.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%v\t%.2f\t%d\t%.2f\t%s\n",
			p.DisplayName, p.Frequency, p.Amount, p.AmountIsFixed,
			p.Consistency, p.Occurrences, p.TotalSpent, next)
	}
	_ = w.Flush()

	fmt.Printf("\n%d candidates, %d recurring; rejected: %d too few charges, %d irregular, %d below amount floor\n",
		result.Meta.TotalCandidates,
		len(result.Patterns),
		result.Meta.ExcludedOccurrences,
		result.Meta.ExcludedConsistency,
		result.Meta.ExcludedAmount)
}
