package series

import (
	"testing"
	"time"

	"covidcharts/src/source/dashboard"

	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func overviewRecords(n int) []*dashboard.Record {
	start := time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC)
	recs := make([]*dashboard.Record, n)
	for i := range recs {
		recs[i] = &dashboard.Record{
			Date:          dashboard.Date(start.AddDate(0, 0, i)),
			AreaName:      "United Kingdom",
			NewCases:      intp(100 + i),
			NewAdmissions: intp(10 + i),
			NewDeaths:     intp(1 + i),
		}
	}
	return recs
}

var defaultLags = Lags{RecentDaysExcluded: 3, Hosp: 7, Death: 14}

func TestLag(t *testing.T) {
	t.Run("Lines", func(t *testing.T) {
		testLaggedLines(t)
	})
	t.Run("Ratios", func(t *testing.T) {
		testLaggedRatios(t)
	})
	t.Run("Gaps", func(t *testing.T) {
		testLaggedRatioGaps(t)
	})
	t.Run("Short", func(t *testing.T) {
		testLaggedShort(t)
	})
}

func testLaggedLines(t *testing.T) {
	recs := overviewRecords(30)
	lines := LaggedLines(recs, defaultLags)

	require.Len(t, lines.Cases.Points, 26)
	require.Len(t, lines.Admissions.Points, 19)
	require.Len(t, lines.Deaths.Points, 12)

	first := recs[0].Date.Time()
	require.Equal(t, first, lines.Admissions.Points[0].Date)
	require.Equal(t, float64(20*(10+7)), lines.Admissions.Points[0].Value)
	require.Equal(t, float64(50*(1+14)), lines.Deaths.Points[0].Value)
	// the newest four records never appear
	require.Equal(t, recs[25].Date.Time(), lines.Cases.Points[25].Date)
	require.Equal(t, float64(125), lines.Cases.Points[25].Value)
	require.Equal(t, "Admissions * 20", lines.Admissions.Name)
}

func testLaggedRatios(t *testing.T) {
	ratios := LaggedRatios(overviewRecords(30), defaultLags)

	require.Len(t, ratios.CasesPerAdmission.Points, 12)
	require.Len(t, ratios.CaseFatality.Points, 12)
	require.Len(t, ratios.HospitalFatality.Points, 12)

	require.InDelta(t, 100.0/17, ratios.CasesPerAdmission.Points[0].Value, 1e-6)
	require.InDelta(t, 15.0, ratios.CaseFatality.Points[0].Value, 1e-9)
	require.InDelta(t, 1500.0/17, ratios.HospitalFatality.Points[0].Value, 1e-6)
	require.InDelta(t, 100.0*26/111, ratios.CaseFatality.Points[11].Value, 1e-6)
}

func testLaggedRatioGaps(t *testing.T) {
	recs := overviewRecords(30)
	recs[7].NewAdmissions = nil // pairs with the cases of day 0
	recs[8].NewAdmissions = intp(0)
	recs[2].NewCases = intp(0)
	recs[17].NewDeaths = nil // pairs with day 3

	ratios := LaggedRatios(recs, defaultLags)

	dates := func(s Series) map[time.Time]float64 {
		m := make(map[time.Time]float64)
		for _, p := range s.Points {
			m[p.Date] = p.Value
		}
		return m
	}
	day := func(i int) time.Time { return recs[i].Date.Time() }

	cpa := dates(ratios.CasesPerAdmission)
	require.NotContains(t, cpa, day(0))
	require.NotContains(t, cpa, day(1))
	require.Equal(t, 0.0, cpa[day(2)])

	cfr := dates(ratios.CaseFatality)
	require.Contains(t, cfr, day(2))
	require.Equal(t, 0.0, cfr[day(2)])
	require.NotContains(t, cfr, day(3))

	hfr := dates(ratios.HospitalFatality)
	require.NotContains(t, hfr, day(0))
	require.NotContains(t, hfr, day(1))
	require.NotContains(t, hfr, day(3))
	require.Len(t, hfr, 9)

	lines := LaggedLines(recs, defaultLags)
	require.Len(t, lines.Admissions.Points, 18) // zero is kept, only nil drops
	require.Len(t, lines.Deaths.Points, 11)
}

func testLaggedShort(t *testing.T) {
	recs := overviewRecords(10)
	lines := LaggedLines(recs, defaultLags)
	require.Len(t, lines.Cases.Points, 6)
	require.Empty(t, lines.Admissions.Points)
	require.Empty(t, LaggedRatios(recs, defaultLags).CaseFatality.Points)

	require.Empty(t, LaggedLines(recs[:2], defaultLags).Cases.Points)
}
