package series

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"covidcharts/src/common"
	"covidcharts/src/source/nhse"
)

var (
	ErrTotalMismatch   = errors.New("total mismatch")
	ErrDuplicateReport = errors.New("duplicate report")
)

// Ledger collects daily reports and re-attributes their deaths from the day
// they were announced to the day they happened.
type Ledger struct {
	// region -> report date -> death date -> deaths
	reports [nhse.NumRegions]map[time.Time]map[time.Time]int
	dates   map[time.Time]struct{}
	total   int
}

func NewLedger() *Ledger {
	l := &Ledger{dates: make(map[time.Time]struct{})}
	for i := range l.reports {
		l.reports[i] = make(map[time.Time]map[time.Time]int)
	}
	return l
}

func (l *Ledger) Add(r *nhse.Report) error {
	rd := common.Day(r.ReportDate)
	if _, ok := l.dates[rd]; ok {
		return fmt.Errorf("%w for %s", ErrDuplicateReport, rd.Format(common.DateLayout))
	}
	l.dates[rd] = struct{}{}
	for region, deaths := range r.Deaths {
		m := make(map[time.Time]int, len(deaths))
		for d, v := range deaths {
			m[common.Day(d)] += v
			l.total += v
		}
		l.reports[region][rd] = m
	}
	return nil
}

// Total is the running count of every death added.
func (l *Ledger) Total() int {
	return l.total
}

// Check recounts the ledger cell by cell and compares it with the running
// total kept by Add.
func (l *Ledger) Check() error {
	var sum int
	for _, byReport := range l.reports {
		for _, byDeath := range byReport {
			for _, v := range byDeath {
				sum += v
			}
		}
	}
	if sum != l.total {
		return fmt.Errorf("%w: cells sum to %d, reported %d", ErrTotalMismatch, sum, l.total)
	}
	return nil
}

// ReportDates lists the loaded report dates in ascending order.
func (l *Ledger) ReportDates() []time.Time {
	ds := make([]time.Time, 0, len(l.dates))
	for d := range l.dates {
		ds = append(ds, d)
	}
	sort.Slice(ds, func(i, j int) bool { return ds[i].Before(ds[j]) })
	return ds
}

// ReportedOn is the number of deaths announced on report date d across regions.
func (l *Ledger) ReportedOn(d time.Time) int {
	var n int
	for r := range l.reports {
		n += l.reportedOn(nhse.Region(r), common.Day(d))
	}
	return n
}

func (l *Ledger) reportedOn(r nhse.Region, d time.Time) int {
	var n int
	for _, v := range l.reports[r][d] {
		n += v
	}
	return n
}

// Snapshot is the view of the ledger after the report dated End: per region,
// deaths by the day they were announced and by the day they occurred, both
// laid out on Axis.
type Snapshot struct {
	End      time.Time
	Axis     []time.Time
	ByReport [nhse.NumRegions][]int
	ByDeath  [nhse.NumRegions][]int
}

// Snapshot attributes deaths from every report dated on or before end to their
// death dates. ByReport covers every loaded report. Dates outside axis are
// dropped.
func (l *Ledger) Snapshot(end time.Time, axis []time.Time) *Snapshot {
	end = common.Day(end)
	s := &Snapshot{End: end, Axis: axis}
	index := make(map[time.Time]int, len(axis))
	for i, d := range axis {
		index[common.Day(d)] = i
	}
	for r := range l.reports {
		byReport := make([]int, len(axis))
		byDeath := make([]int, len(axis))
		for rd, deaths := range l.reports[r] {
			if i, ok := index[rd]; ok {
				byReport[i] = l.reportedOn(nhse.Region(r), rd)
			}
			if rd.After(end) {
				continue
			}
			for d, v := range deaths {
				if i, ok := index[d]; ok {
					byDeath[i] += v
				}
			}
		}
		s.ByReport[r] = byReport
		s.ByDeath[r] = byDeath
	}
	return s
}

// England sums the regions element-wise.
func (s *Snapshot) England() (byReport, byDeath []int) {
	byReport = make([]int, len(s.Axis))
	byDeath = make([]int, len(s.Axis))
	for r := 0; r < nhse.NumRegions; r++ {
		for i := range s.Axis {
			byReport[i] += s.ByReport[r][i]
			byDeath[i] += s.ByDeath[r][i]
		}
	}
	return byReport, byDeath
}

// Totals sums England's two series.
func (s *Snapshot) Totals() (byReport, byDeath int) {
	rs, ds := s.England()
	for i := range rs {
		byReport += rs[i]
		byDeath += ds[i]
	}
	return byReport, byDeath
}
