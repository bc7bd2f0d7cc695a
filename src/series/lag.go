package series

import (
	"covidcharts/src/source/dashboard"

	"github.com/shopspring/decimal"
)

const (
	AdmissionsScale = 20
	DeathsScale     = 50
)

// Lags shifts admissions and deaths back onto the date of the cases that
// preceded them. The most recent RecentDaysExcluded+1 days are dropped as
// still incomplete.
type Lags struct {
	RecentDaysExcluded int
	Hosp               int
	Death              int
}

type Lagged struct {
	Cases      Series
	Admissions Series
	Deaths     Series
}

type Ratios struct {
	CasesPerAdmission Series
	CaseFatality      Series // percent
	HospitalFatality  Series // percent
}

var (
	hundred   = decimal.NewFromInt(100)
	precision = int32(6)
)

// complete drops the trailing days that are still being revised. records must
// be in ascending date order.
func (l Lags) complete(records []*dashboard.Record) []*dashboard.Record {
	n := len(records) - (l.RecentDaysExcluded + 1)
	if n < 0 {
		n = 0
	}
	return records[:n]
}

func at(records []*dashboard.Record, i int, field func(*dashboard.Record) *int) *int {
	if i >= len(records) {
		return nil
	}
	return field(records[i])
}

func cases(r *dashboard.Record) *int      { return r.NewCases }
func admissions(r *dashboard.Record) *int { return r.NewAdmissions }
func deaths(r *dashboard.Record) *int     { return r.NewDeaths }

// LaggedLines plots, against each date, that day's cases, admissions Hosp days
// later times 20 and deaths Death days later times 50.
func LaggedLines(records []*dashboard.Record, l Lags) *Lagged {
	recs := l.complete(records)
	out := &Lagged{
		Cases:      Series{Name: "Cases"},
		Admissions: Series{Name: "Admissions * 20"},
		Deaths:     Series{Name: "Deaths * 50"},
	}
	for i, r := range recs {
		d := r.Date.Time()
		if c := r.NewCases; c != nil {
			out.Cases.add(d, float64(*c))
		}
		if a := at(recs, i+l.Hosp, admissions); a != nil {
			out.Admissions.add(d, float64(*a*AdmissionsScale))
		}
		if x := at(recs, i+l.Death, deaths); x != nil {
			out.Deaths.add(d, float64(*x*DeathsScale))
		}
	}
	return out
}

// LaggedRatios relates each day's cases to the admissions and deaths that
// followed them. A missing operand or zero denominator leaves a gap, except
// that the case fatality rate reads 0 when there were no cases.
func LaggedRatios(records []*dashboard.Record, l Lags) *Ratios {
	recs := l.complete(records)
	out := &Ratios{
		CasesPerAdmission: Series{Name: "Cases/admission"},
		CaseFatality:      Series{Name: "Case fat. rate (%)"},
		HospitalFatality:  Series{Name: "Hosp. fat. rate (%)"},
	}
	for i := 0; i+l.Death < len(recs); i++ {
		d := recs[i].Date.Time()
		c := at(recs, i, cases)
		a := at(recs, i+l.Hosp, admissions)
		x := at(recs, i+l.Death, deaths)

		if v, ok := ratio(c, a, decimal.NewFromInt(1)); ok {
			out.CasesPerAdmission.add(d, v)
		}
		if c != nil && *c <= 0 {
			out.CaseFatality.add(d, 0)
		} else if v, ok := ratio(x, c, hundred); ok {
			out.CaseFatality.add(d, v)
		}
		if v, ok := ratio(x, a, hundred); ok {
			out.HospitalFatality.add(d, v)
		}
	}
	return out
}

func ratio(num, den *int, scale decimal.Decimal) (float64, bool) {
	if num == nil || den == nil || *den == 0 {
		return 0, false
	}
	v := decimal.NewFromInt(int64(*num)).Mul(scale).Div(decimal.NewFromInt(int64(*den)))
	return v.Round(precision).InexactFloat64(), true
}
