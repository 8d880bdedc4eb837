package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/offer-tracker/internal/catalog"
	"github.com/donaldgifford/offer-tracker/pkg/offer"
)

func probeCmd() *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Fetch the first catalog page and preview it",
		Long: "probe checks connectivity to the catalog endpoint. It fetches the first\n" +
			"page, prints a preview of its items and reports whether the tracked\n" +
			"product is on that page. No state is read or written.",
		Example: `  offer-tracker probe
  offer-tracker probe --rows 36`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			newLogger(cfg)

			page, err := newCatalogClient(cfg).FetchPage(cmd.Context(), catalog.PageRequest{
				Offset: 0,
				Limit:  cfg.Catalog.PageSize,
			})
			if err != nil {
				return fmt.Errorf("probing catalog: %w", err)
			}

			items := catalog.ToItems(page.Items)
			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, page)
			}

			fmt.Fprintf(out, "Fetched %d items from %s\n\n", len(items), cfg.Catalog.BaseURL)

			tw := newTabWriter(out)
			tw.writef("PRODUCT\tNAME\tBASE\tPROMO\tSIZES\n")
			for i := range items[:min(max(rows, 0), len(items))] {
				it := &items[i]
				promo := "-"
				if it.Prices.Promo != nil {
					promo = it.Prices.Promo.StringFixed(2)
				}
				tw.writef("%s\t%s\t%s\t%s\t%s\n",
					it.ProductID,
					truncate(it.Name, 40),
					it.Prices.Base.StringFixed(2),
					promo,
					truncate(sizeNames(it.Sizes), 30),
				)
			}
			if err := tw.finish(); err != nil {
				return err
			}

			st, found := offer.Evaluate(items, targetOf(cfg))
			switch {
			case !found:
				fmt.Fprintf(out, "\n%s is not on the first page.\n", cfg.Target.ProductID)
			case st.Qualifies():
				fmt.Fprintf(out, "\n%s is ON OFFER in %s.\n", cfg.Target.ProductID, strings.Join(st.MatchingSizes, ", "))
			default:
				fmt.Fprintf(out, "\n%s is on the first page but not on offer in a tracked size.\n", cfg.Target.ProductID)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 10, "number of items to preview")
	return cmd
}

func sizeNames(sizes []offer.Size) string {
	names := make([]string, 0, len(sizes))
	for _, s := range sizes {
		if s.Name != "" {
			names = append(names, s.Name)
		} else {
			names = append(names, s.DisplayCode)
		}
	}
	return strings.Join(names, ",")
}
