package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cadencefin/cadence/internal/common"
	"github.com/cadencefin/cadence/internal/variability"
)

func variabilityCmd() *cobra.Command {
	var monthsBack int

	cmd := &cobra.Command{
		Use:   "variability",
		Short: "Classify each category's monthly spend as fixed, variable or seasonal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			now := time.Now()
			totals, err := store.GetMonthlyCategoryTotals(ctx, now.AddDate(0, -monthsBack, 0), now)
			if err != nil {
				return fmt.Errorf("failed to load monthly totals: %w", err)
			}
			if len(totals) == 0 {
				return common.NewUserError(
					fmt.Sprintf("no categorized spending in the last %d months", monthsBack),
					common.ErrNoTransactions)
			}

			// Rows arrive ordered by category then month; fold them into
			// one series per category.
			series := make(map[string][]float64)
			for _, t := range totals {
				series[t.Category] = append(series[t.Category], t.Total)
			}

			categories := make([]string, 0, len(series))
			for c := range series {
				categories = append(categories, c)
			}
			sort.Strings(categories)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tMONTHS\tCLASSIFICATION")
			for _, c := range categories {
				fmt.Fprintf(w, "%s\t%d\t%s\n", c, len(series[c]), variability.Classify(series[c]))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&monthsBack, "months-back", 12, "how many months of history to analyze")

	return cmd
}
