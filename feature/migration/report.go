package migration

import (
	"fmt"
	"strings"
	"time"
)

// PassReport summarizes one reconciliation pass.
type PassReport struct {
	PassID     string    `json:"passId"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Rows       int       `json:"rows"`
	Created    int       `json:"created"`
	Changed    int       `json:"changed"`
	Errors     int       `json:"errors"`
	Records    []Record  `json:"records"`
}

// Render formats the report for humans: created entities first, then
// per-field changes, then the pass totals.
func (r *PassReport) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pass %s\n", r.PassID)

	for _, rec := range r.Records {
		if !rec.Created {
			continue
		}
		fmt.Fprintf(&b, "created %s in group %s\n", rec.EntityID, rec.GroupID)
	}
	for _, rec := range r.Records {
		for _, c := range rec.Changes {
			fmt.Fprintf(&b, "changed %s/%s %s: %q -> %q\n",
				rec.GroupID, rec.EntityID, c.Field, c.Old, c.New)
		}
	}

	fmt.Fprintf(&b, "%d rows, %d created, %d changed, %d errors in %s\n",
		r.Rows, r.Created, r.Changed, r.Errors,
		r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
	return b.String()
}
