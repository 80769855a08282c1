package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/alnah/mission-control/internal/config"
	"github.com/alnah/mission-control/internal/dashboard"
	"github.com/alnah/mission-control/internal/dateutil"
)

// runExplainers prints explainer ids and titles in display order.
func runExplainers(args []string, env *Environment) error {
	flags, positional, err := parseExplainersFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: explainers takes no arguments", ErrUsage)
	}

	_, ds, err := loadDataset(flags.common, flags.dataDir, env)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	for _, e := range ds.Explainers {
		fmt.Fprintf(tw, "%s\t%s %s\t%s\n", e.ID, e.Icon, e.Title, e.Description)
	}
	return tw.Flush()
}

// runActivity prints the activity log, optionally filtered.
func runActivity(args []string, env *Environment) error {
	flags, positional, err := parseActivityFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: activity takes no arguments (use --query)", ErrUsage)
	}

	cfg, ds, err := loadDataset(flags.common, flags.dataDir, env)
	if err != nil {
		return err
	}

	date, err := dateutil.NewFormatter(cfg.Dashboard.DateFormat)
	if err != nil {
		return err
	}
	clock, err := dateutil.NewFormatter(cfg.Dashboard.TimeFormat)
	if err != nil {
		return err
	}

	activities := dashboard.FilterActivities(ds.Activities, flags.query)
	if len(activities) == 0 {
		if !flags.common.quiet {
			fmt.Fprintln(env.Stderr, "no matching activity")
		}
		return nil
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 4, 2, ' ', 0)
	for _, a := range activities {
		fmt.Fprintf(tw, "%s %s\t%s\t%s %s\t%s\n",
			date.Format(a.Timestamp), clock.Format(a.Timestamp),
			a.Type, dashboard.StatusIcon(a.Status), a.Status, a.Action)
	}
	return tw.Flush()
}

// loadDataset resolves config for a listing command and loads its dataset.
func loadDataset(common commonFlags, dataDir string, env *Environment) (*config.Config, *dashboard.Dataset, error) {
	cfg, err := loadCommandConfig(common, func(c *config.Config) {
		if dataDir != "" {
			c.Data.Dir = dataDir
		}
		c.Data.Watch = false
	})
	if err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(cfg, common, env)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = logger.Close() }()

	store, err := openStore(cfg, logger, env)
	if err != nil {
		return nil, nil, err
	}
	return cfg, store.Snapshot(), nil
}
