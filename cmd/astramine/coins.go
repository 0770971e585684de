package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/yourusername/astramine/internal/mining"
)

var coinsJSON bool

var coinsCmd = &cobra.Command{
	Use:   "coins",
	Short: "List the coin catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		coins := mining.ListCoins()
		out := cmd.OutOrStdout()
		if coinsJSON {
			return json.NewEncoder(out).Encode(coins)
		}

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tPRICE\tVOLATILITY\tUSD/TH/DAY")
		for _, c := range coins {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				c.ID, c.Name,
				money(c.Price),
				decimal.NewFromFloat(c.Volatility).StringFixed(2),
				decimal.NewFromFloat(c.DailyValuePerTH()).StringFixed(4))
		}
		return tw.Flush()
	},
}

func init() {
	coinsCmd.Flags().BoolVar(&coinsJSON, "json", false, "Print the catalog as JSON")
}
