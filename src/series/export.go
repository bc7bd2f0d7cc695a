package series

import (
	"fmt"
	"io"
	"strings"

	"covidcharts/src/common"
	"covidcharts/src/source/nhse"
)

// WriteTSV writes s as tab-separated lines: a header naming each region's
// report and death columns, then one line per axis date.
func WriteTSV(w io.Writer, s *Snapshot) error {
	var writeErr error
	write := func(s string) {
		if writeErr == nil {
			_, writeErr = io.WriteString(w, s)
		}
	}

	cols := []string{"Date"}
	for _, r := range nhse.Regions() {
		cols = append(cols, r.String()+" (report)", r.String()+" (death)")
	}
	cols = append(cols, nhse.EnglandName+" (report)", nhse.EnglandName+" (death)")
	write(strings.Join(cols, "\t") + "\n")

	byReport, byDeath := s.England()
	for i, d := range s.Axis {
		vals := make([]string, 0, len(cols))
		vals = append(vals, d.Format(common.DateLayout))
		for r := range s.ByReport {
			vals = append(vals, fmt.Sprint(s.ByReport[r][i]), fmt.Sprint(s.ByDeath[r][i]))
		}
		vals = append(vals, fmt.Sprint(byReport[i]), fmt.Sprint(byDeath[i]))
		write(strings.Join(vals, "\t") + "\n")
	}
	return writeErr
}
