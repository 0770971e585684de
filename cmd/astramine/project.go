package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/yourusername/astramine/internal/mining"
)

var projectOpts struct {
	hashRate     float64
	power        float64
	electricity  float64
	reinvestment float64
	coin         string
	asJSON       bool
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Print the 21-day projection and insights for one rig configuration",
	Example: `  astramine project --hash-rate 150 --coin litecoin
  astramine project --electricity 0.3 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := projectParameters(cmd)
		dashboard, err := newAdvisor().Dashboard(cmd.Context(), uuid.NewString(), params)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if projectOpts.asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(dashboard)
		}
		return renderDashboard(out, dashboard)
	},
}

func init() {
	f := projectCmd.Flags()
	f.Float64Var(&projectOpts.hashRate, "hash-rate", 0, "Hash rate in TH/s")
	f.Float64Var(&projectOpts.power, "power", 0, "Power consumption in kW")
	f.Float64Var(&projectOpts.electricity, "electricity", 0, "Electricity cost in $/kWh")
	f.Float64Var(&projectOpts.reinvestment, "reinvestment", 0, "Reinvestment rate between 0 and 1")
	f.StringVar(&projectOpts.coin, "coin", "", "Coin id (see 'astramine coins')")
	f.BoolVar(&projectOpts.asJSON, "json", false, "Print the full dashboard as JSON")
}

// projectParameters overlays the flags that were set on the configured defaults.
func projectParameters(cmd *cobra.Command) mining.OperatingParameters {
	p := cfg.DefaultParameters()
	f := cmd.Flags()
	if f.Changed("hash-rate") {
		p.HashRate = projectOpts.hashRate
	}
	if f.Changed("power") {
		p.PowerConsumption = projectOpts.power
	}
	if f.Changed("electricity") {
		p.ElectricityCost = projectOpts.electricity
	}
	if f.Changed("reinvestment") {
		p.ReinvestmentRate = projectOpts.reinvestment
	}
	if f.Changed("coin") {
		p.CoinID = projectOpts.coin
	}
	return p
}

func money(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

func renderDashboard(w io.Writer, d *mining.Dashboard) error {
	p := d.Parameters
	fmt.Fprintf(w, "%s @ %s TH/s, %s kW, $%s/kWh, %s reinvested\n\n",
		d.Coin.Name,
		decimal.NewFromFloat(p.HashRate).StringFixed(0),
		decimal.NewFromFloat(p.PowerConsumption).StringFixed(1),
		decimal.NewFromFloat(p.ElectricityCost).StringFixed(2),
		decimal.NewFromFloat(p.ReinvestmentRate*100).StringFixed(0)+"%")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Day\tProfit\tCumulative\t")
	cumulative := d.Projection.Cumulative()
	for i, pt := range d.Projection {
		fmt.Fprintf(tw, "%d\t%s\t%s\t\n", pt.Day, money(pt.Profit), money(cumulative[i]))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	in := d.Insight
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total profit:        %s (best day %s, worst day %s)\n",
		money(d.Summary.TotalProfit), money(d.Summary.MaxProfit), money(d.Summary.MinProfit))
	fmt.Fprintf(w, "Capital efficiency:  %s%%\n", decimal.NewFromFloat(in.CapitalEfficiency).StringFixed(1))
	fmt.Fprintf(w, "Breakeven:           day %d\n", in.BreakevenDays)
	fmt.Fprintf(w, "Risk:                %s\n", in.RiskLevel)
	fmt.Fprintf(w, "Efficiency:          %s\n", in.EfficiencyLabel)
	fmt.Fprintf(w, "Network pulse:       %s, %d%% confidence (weekly avg %s)\n",
		d.Pulse.Traction, d.Pulse.ConfidencePercent, money(d.Pulse.WeeklyAverage))

	fmt.Fprintln(w, "\nSuggested tuning:")
	for _, s := range in.SuggestedTuning {
		if _, err := fmt.Fprintf(w, "  - %s\n", s); err != nil {
			return err
		}
	}
	return nil
}
