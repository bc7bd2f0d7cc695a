// Package dashboard reads daily series from the UK coronavirus dashboard API.
package dashboard

import (
	"encoding/json"
	"fmt"
	"time"

	"covidcharts/src/common"
)

// Query selects areas with Filters and names the returned fields with
// Structure (output name to API metric).
type Query struct {
	Filters   []string
	Structure map[string]string
}

// OverviewQuery requests the UK-wide daily overview used by the lagged charts.
func OverviewQuery() Query {
	return Query{
		Filters: []string{"areaType=overview"},
		Structure: map[string]string{
			"date":                       "date",
			"areaName":                   "areaName",
			"areaCode":                   "areaCode",
			"newCasesBySpecimenDate":     "newCasesBySpecimenDate",
			"newAdmissions":              "newAdmissions",
			"hospitalCases":              "hospitalCases",
			"newDeaths28DaysByDeathDate": "newDeaths28DaysByDeathDate",
		},
	}
}

// Record is one day of one area. Counts are nil where the API publishes null.
type Record struct {
	Date          Date   `json:"date"`
	AreaName      string `json:"areaName"`
	AreaCode      string `json:"areaCode"`
	NewCases      *int   `json:"newCasesBySpecimenDate"`
	NewAdmissions *int   `json:"newAdmissions"`
	HospitalCases *int   `json:"hospitalCases"`
	NewDeaths     *int   `json:"newDeaths28DaysByDeathDate"`
}

// Date is a calendar day encoded as "2006-01-02".
type Date time.Time

func (d Date) Time() time.Time {
	return time.Time(d)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Format(common.DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := common.ParseDay(s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	*d = Date(t)
	return nil
}

type page struct {
	Data       []*Record  `json:"data"`
	Pagination pagination `json:"pagination"`
}

type pagination struct {
	Next *string `json:"next"`
}

func formatCount(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}

func (r *Record) String() string {
	return fmt.Sprintf("%s %s %s cases=%s admissions=%s hospital=%s deaths=%s",
		r.Date.Time().Format(common.DateLayout), r.AreaName, r.AreaCode,
		formatCount(r.NewCases), formatCount(r.NewAdmissions),
		formatCount(r.HospitalCases), formatCount(r.NewDeaths))
}
