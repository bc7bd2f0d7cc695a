package job

import (
	"context"
	"fmt"

	"covidcharts/src/chart"
	"covidcharts/src/common"
	"covidcharts/src/series"
	"covidcharts/src/source/dashboard"
)

const headRecords = 10

// Overview charts the UK daily overview with admissions and deaths lagged
// onto the cases that preceded them.
type Overview struct {
	cfg    *common.Config
	source dashboard.Fetcher
}

func NewOverview(cfg *common.Config) *Overview {
	client := dashboard.NewClient(cfg.DashboardURL, cfg.HTTPTimeout)
	return &Overview{
		cfg:    cfg,
		source: dashboard.NewCachedClient(client, cfg.DataDir, "overview"),
	}
}

func (o *Overview) Run(ctx context.Context) error {
	log := common.RunLogger("overview")
	log.Info("Overview Run")

	records, err := o.source.Fetch(ctx, dashboard.OverviewQuery())
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("Overview Run no records")
	}
	log.Infof("Overview Run fetched %d records", len(records))
	for i := len(records) - 1; i >= 0 && i >= len(records)-headRecords; i-- {
		log.Infof("Overview Run %s", records[i])
	}

	lags := series.Lags{
		RecentDaysExcluded: o.cfg.RecentDaysExcluded,
		Hosp:               o.cfg.HospLag,
		Death:              o.cfg.DeathLag,
	}
	lines := series.LaggedLines(records, lags)
	ratios := series.LaggedRatios(records, lags)
	if len(lines.Cases.Points) == 0 {
		return fmt.Errorf("Overview Run %d records leave nothing after excluding the last %d days",
			len(records), lags.RecentDaysExcluded+1)
	}

	if err := common.EnsureDir(o.cfg.OutDir); err != nil {
		return err
	}
	paths, err := chart.SaveOverviewFigures(o.cfg.OutDir, lines, ratios)
	if err != nil {
		return err
	}
	page, err := chart.SavePage(o.cfg.OutDir, chart.OverviewPageFile, chart.OverviewPage(lines, ratios))
	if err != nil {
		return err
	}
	for _, p := range append(paths, page) {
		log.Infof("Overview Run saved %s", p)
	}
	return nil
}
