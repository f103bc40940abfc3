package services

import (
	"fmt"
	"relief-dispatch-service/internal/domain"
	"strconv"
	"strings"
)

// RenderSummary formats a report as human-readable text: one line per run,
// then cumulative deliveries per location, then run counts per vehicle.
func RenderSummary(r domain.DeliveryReport) string {
	dir := r.Directory()
	var b strings.Builder

	if r.Title != "" {
		fmt.Fprintf(&b, "%s\n\n", r.Title)
	}

	for _, v := range r.Vehicles {
		for _, run := range v.Runs {
			fmt.Fprintf(&b, "%s - Run %d: %s | Time: %s | Load: %d\n",
				v.Label, run.Number,
				strings.Join(dir.Names(run.Stops), " -> "),
				formatMinutes(run.TotalTime),
				run.Load,
			)
		}
	}

	b.WriteString("\nSupplies Delivered:\n")
	for _, id := range dir.IDs() {
		q, ok := r.Delivered[id]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s: %d\n", dir.Name(id), q)
	}

	b.WriteString("\nTruck Usage:\n")
	for _, v := range r.Vehicles {
		fmt.Fprintf(&b, "%s: %d runs\n", v.Label, len(v.Runs))
	}

	if len(r.Unserved) > 0 {
		b.WriteString("\nUnserved:\n")
		for _, id := range r.Unserved {
			fmt.Fprintf(&b, "%s\n", dir.Name(id))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func formatMinutes(m float64) string {
	return strconv.FormatFloat(m, 'f', -1, 64)
}
