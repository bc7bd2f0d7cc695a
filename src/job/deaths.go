package job

import (
	"context"
	"fmt"
	"path/filepath"

	"covidcharts/src/chart"
	"covidcharts/src/common"
	"covidcharts/src/series"
	"covidcharts/src/source/nhse"
)

const DeathsTSVFile = "deaths_latest.tsv"

// Deaths mirrors the NHS England daily workbooks and charts, for each report
// date, deaths by the day they were announced against the day they happened.
type Deaths struct {
	cfg        *common.Config
	downloader *nhse.Downloader
}

func NewDeaths(cfg *common.Config) *Deaths {
	return &Deaths{
		cfg:        cfg,
		downloader: nhse.NewDownloader(cfg.NHSEURL, cfg.DataDir, cfg.DownloadWorkers, cfg.HTTPTimeout),
	}
}

func (j *Deaths) Run(ctx context.Context) error {
	log := common.RunLogger("deaths")
	now := common.Clock.Now()
	log.Infof("Deaths Run current time %s", now.Format("15:04"))

	end := j.cfg.RecordEndAt(now)
	dates := common.DateRange(j.cfg.RecordStart, end)
	if len(dates) == 0 {
		return fmt.Errorf("Deaths Run no report dates between %s and %s",
			j.cfg.RecordStart.Format(common.DateLayout), end.Format(common.DateLayout))
	}

	n, err := j.downloader.Fetch(ctx, dates)
	if err != nil {
		return err
	}
	log.Infof("Deaths Run downloaded %d of %d workbooks", n, len(dates))

	ledger := series.NewLedger()
	for _, d := range dates {
		if err := ctx.Err(); err != nil {
			return err
		}
		p := j.downloader.Path(d)
		log.Infof("Deaths Run reading %s", p)
		report, err := nhse.ReadWorkbook(p, d)
		if err != nil {
			return err
		}
		if err := ledger.Add(report); err != nil {
			return err
		}
		log.Infof("Deaths Run %d deaths reported today", ledger.ReportedOn(d))
	}
	log.Infof("Deaths Run total NHSE reported deaths by report date: %d", ledger.Total())
	if err := ledger.Check(); err != nil {
		return err
	}

	if err := common.EnsureDir(j.cfg.OutDir); err != nil {
		return err
	}
	axis := common.DateRange(j.cfg.HistoryStart, end)
	ends := ledger.ReportDates()
	if !j.cfg.SnapshotAll {
		ends = ends[len(ends)-1:]
	}
	var last *series.Snapshot
	for _, d := range ends {
		if err := ctx.Err(); err != nil {
			return err
		}
		s := ledger.Snapshot(d, axis)
		byReport, byDeath := s.Totals()
		log.Infof("Deaths Run %s total by report date: %d, by death date: %d",
			d.Format(common.DateLayout), byReport, byDeath)
		p, err := chart.SaveDeathsFigure(j.cfg.OutDir, s)
		if err != nil {
			return err
		}
		log.Infof("Deaths Run saved %s", p)
		last = s
	}

	p, err := chart.SavePage(j.cfg.OutDir, chart.DeathsPageFile, chart.DeathsPage(last))
	if err != nil {
		return err
	}
	log.Infof("Deaths Run saved %s", p)
	if p, err = j.saveTSV(last); err != nil {
		return err
	}
	log.Infof("Deaths Run saved %s", p)
	return nil
}

func (j *Deaths) saveTSV(s *series.Snapshot) (string, error) {
	p := filepath.Join(j.cfg.OutDir, DeathsTSVFile)
	fw, err := common.NewFileWriter(p)
	if err != nil {
		return "", err
	}
	if err := series.WriteTSV(fw, s); err != nil {
		fw.Abort()
		return "", err
	}
	return p, fw.Close()
}
