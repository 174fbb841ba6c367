package view

import (
	"strconv"
	"strings"
	"time"

	"github.com/javiermolinar/horario/internal/dateutil"
	"github.com/javiermolinar/horario/internal/grid"
)

// HeaderLabels builds the column labels of a grid: a corner label then one
// per day. When week is set, days carry their date and today is starred.
func HeaderLabels(a grid.Axis, week time.Time, today time.Time) ([]string, map[int]bool) {
	labels := make([]string, 0, a.NumDays()+1)
	todayCols := make(map[int]bool)

	if week.IsZero() {
		labels = append(labels, "")
		for _, d := range a.Days() {
			labels = append(labels, shortDay(d))
		}
		return labels, todayCols
	}

	yearSuffix := week.Year() % 100
	labels = append(labels, week.Format("Jan")+" "+strconv.Itoa(yearSuffix/10)+strconv.Itoa(yearSuffix%10))

	for i, d := range a.Days() {
		label := shortDay(d)
		if date, ok := dateutil.DateOfWeekday(week, d); ok {
			label += " " + strconv.Itoa(date.Day())
			if dateutil.SameDay(date, today) {
				label = "*" + label + "*"
				todayCols[i+1] = true
			}
		}
		labels = append(labels, label)
	}
	return labels, todayCols
}

func shortDay(name string) string {
	if len(name) < 3 {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:3]
}
