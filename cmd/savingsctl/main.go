// savingsctl scores lead lists and analyzes resource configurations from the shell.
//
// Usage:
//
//	savingsctl score --file leads.csv [--top 5] [--export prioritized_leads.csv] [--charts leads.html]
//	savingsctl analyze --service Compute --instance t2.micro --utilization 20 --billing Hourly --cost 100
//	savingsctl notify --service Compute --utilization 20 --billing Hourly --cost 100 --to ops@example.com
package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"cloud-savings/internal/charts"
	"cloud-savings/internal/leads"
	"cloud-savings/internal/notify"
	"cloud-savings/internal/savings"
	"cloud-savings/internal/shared/config"
	"cloud-savings/internal/shared/telemetry"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "savingsctl",
		Usage:   "score sales leads and estimate cloud savings",
		Version: version,
		Before: func(c *cli.Context) error {
			telemetry.SetOutput(c.App.ErrWriter)
			return nil
		},
		Commands: []*cli.Command{
			scoreCommand(),
			analyzeCommand(),
			notifyCommand(),
		},
	}
}

func scoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "score",
		Usage: "score a lead CSV and print the top leads",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "lead CSV with columns " + strings.Join(leads.InputColumns(), ", "),
				Required: true,
			},
			&cli.IntFlag{
				Name:  "top",
				Value: leads.DefaultTopN,
				Usage: "number of leads to print",
			},
			&cli.StringFlag{
				Name:  "export",
				Usage: "write all scored leads, in file order, to this CSV path",
			},
			&cli.StringFlag{
				Name:  "charts",
				Usage: "write the lead charts to this HTML path",
			},
		},
		Action: runScore,
	}
}

func runScore(c *cli.Context) error {
	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("open leads: %w", err)
	}
	defer f.Close()

	records, err := leads.DecodeCSV(f)
	if err != nil {
		return err
	}
	scored := leads.ScoreAll(records)
	if len(scored) == 0 {
		return leads.ErrNoLeads
	}

	summary := leads.Summarize(scored)
	fmt.Fprintf(c.App.Writer, "Leads: %d  Average score: %.2f\n\n", summary.TotalLeads, summary.AverageScore)
	if err := printLeads(c.App.Writer, leads.Top(scored, c.Int("top"))); err != nil {
		return err
	}

	if path := c.String("export"); path != "" {
		if err := writeFile(path, func(w io.Writer) error {
			return leads.EncodeCSV(w, leads.Rank(scored))
		}); err != nil {
			return fmt.Errorf("export leads: %w", err)
		}
		fmt.Fprintf(c.App.ErrWriter, "Exported %d leads to %s\n", len(scored), path)
	}
	if path := c.String("charts"); path != "" {
		r := charts.NewRenderer("Lead Prioritization")
		if err := writeFile(path, func(w io.Writer) error {
			return r.RenderLeads(w, leads.BuildCharts(scored))
		}); err != nil {
			return fmt.Errorf("render charts: %w", err)
		}
		fmt.Fprintf(c.App.ErrWriter, "Wrote charts to %s\n", path)
	}
	return nil
}

func printLeads(out io.Writer, records []leads.Record) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCOMPANY\tINDUSTRY\tPROVIDER\tSIZE\tSPEND\tGROWTH\tCHURN\tSCORE")
	for i, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%.2f\t%d%%\t%d%%\t%.2f\n",
			i+1, r.CompanyName, r.Industry, r.CloudProvider, r.CompanySize,
			r.EstimatedSpend, r.GrowthRate, r.ChurnRisk, r.LeadScore)
	}
	return tw.Flush()
}

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "service",
			Aliases:  []string{"s"},
			Usage:    "Compute, Storage or Database",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "instance",
			Aliases: []string{"i"},
			Usage:   "instance type, ignored for Storage",
		},
		&cli.IntFlag{
			Name:     "utilization",
			Aliases:  []string{"u"},
			Usage:    "average utilization percentage (0-100)",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "billing",
			Aliases: []string{"b"},
			Value:   string(savings.BillingHourly),
			Usage:   "Hourly or Monthly",
		},
		&cli.StringFlag{
			Name:    "cost",
			Aliases: []string{"c"},
			Value:   "0",
			Usage:   "current monthly cost in dollars",
		},
	}
}

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "print recommendations and potential savings for a resource",
		Flags: configFlags(),
		Action: func(c *cli.Context) error {
			cfg, res, err := analyze(c)
			if err != nil {
				return err
			}
			printResult(c.App.Writer, cfg, res)
			return nil
		},
	}
}

func notifyCommand() *cli.Command {
	flags := append(configFlags(), &cli.StringFlag{
		Name:     "to",
		Usage:    "recipient email address",
		Required: true,
	})
	return &cli.Command{
		Name:  "notify",
		Usage: "analyze a resource and email the recommendations",
		Flags: flags,
		Action: func(c *cli.Context) error {
			cfg, res, err := analyze(c)
			if err != nil {
				return err
			}
			printResult(c.App.Writer, cfg, res)

			mailCfg := config.Load().Mail
			if !mailCfg.Configured() {
				return notify.ErrMailNotConfigured
			}
			mailer, err := notify.NewSMTPMailer(mailCfg)
			if err != nil {
				return err
			}
			svc := &notify.Service{Sender: mailer, Repo: notify.NewMemoryRepo()}
			d, err := svc.Notify(c.Context, c.String("to"), cfg, res)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "\nEmail sent to %s (delivery %s)\n", d.Recipient, d.ID)
			return nil
		},
	}
}

func analyze(c *cli.Context) (savings.ResourceConfig, savings.Result, error) {
	cost, err := decimal.NewFromString(c.String("cost"))
	if err != nil {
		return savings.ResourceConfig{}, savings.Result{}, fmt.Errorf("%w: cost %q is not a number", savings.ErrInvalidInput, c.String("cost"))
	}
	utilization := c.Int("utilization")
	cfg, err := savings.ConfigRequest{
		ServiceType:      c.String("service"),
		InstanceType:     c.String("instance"),
		Utilization:      &utilization,
		BillingFrequency: c.String("billing"),
		CurrentCost:      cost,
	}.ToConfig()
	if err != nil {
		return savings.ResourceConfig{}, savings.Result{}, err
	}
	svc := &savings.Service{}
	res, err := svc.Analyze(c.Context, cfg)
	if err != nil {
		return savings.ResourceConfig{}, savings.Result{}, err
	}
	return cfg, res, nil
}

func printResult(out io.Writer, cfg savings.ResourceConfig, res savings.Result) {
	fmt.Fprintf(out, "Service: %s\n", cfg.ServiceType.Label())
	if cfg.InstanceType != "" {
		fmt.Fprintf(out, "Instance: %s\n", cfg.InstanceType)
	}
	fmt.Fprintln(out, "Recommendations:")
	if len(res.Recommendations) == 0 {
		fmt.Fprintln(out, "  (none)")
	}
	for _, rec := range res.Recommendations {
		fmt.Fprintf(out, "  - %s\n", rec)
	}
	cmp := savings.Compare(cfg)
	fmt.Fprintf(out, "Current Cost: $%s\n", cmp.CurrentCost.StringFixed(2))
	fmt.Fprintf(out, "Optimized Cost: $%s\n", cmp.OptimizedCost.StringFixed(2))
	fmt.Fprintf(out, "Potential Savings: $%s\n", res.PotentialSavings.StringFixed(2))
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
