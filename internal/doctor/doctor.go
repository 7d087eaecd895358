package doctor

import (
	"fmt"
	"io"

	"github.com/xucongyong/claude-notify/internal/style"
)

// Doctor runs a fixed list of checks.
type Doctor struct {
	checks []Check
}

// NewDoctor returns a Doctor with no checks registered.
func NewDoctor() *Doctor {
	return &Doctor{}
}

// Register adds checks to the run.
func (d *Doctor) Register(checks ...Check) {
	d.checks = append(d.checks, checks...)
}

// Checks returns the registered checks.
func (d *Doctor) Checks() []Check {
	return d.checks
}

// DefaultChecks are the checks `claude-notify doctor` runs.
func DefaultChecks() []Check {
	return []Check{
		NewPlatformCheck(),
		NewInterpreterCheck(),
		NewScriptsCheck(),
		NewIconCheck(),
		NewSettingsHooksCheck(),
		NewNotifierCheck(),
	}
}

// Report collects the results of a run.
type Report struct {
	Results []*CheckResult
}

// Run executes every registered check in order.
func (d *Doctor) Run(ctx *CheckContext) *Report {
	r := &Report{}
	for _, c := range d.checks {
		r.Results = append(r.Results, runCheck(c, ctx))
	}
	return r
}

// Fix runs every check, applies the fix of each fixable check that did not
// pass and runs that check again. Repaired results are prefixed "(fixed)".
// A failed fix is recorded in the result's details.
func (d *Doctor) Fix(ctx *CheckContext) *Report {
	r := &Report{}
	for _, c := range d.checks {
		res := runCheck(c, ctx)
		if res.Status != StatusOK && c.CanFix() {
			if err := c.Fix(ctx); err != nil {
				res.Details = append(res.Details, "fix failed: "+err.Error())
			} else {
				res = runCheck(c, ctx)
				if res.Status == StatusOK {
					res.Message = "(fixed) " + res.Message
				}
			}
		}
		r.Results = append(r.Results, res)
	}
	return r
}

func runCheck(c Check, ctx *CheckContext) *CheckResult {
	res := c.Run(ctx)
	if res.Category == "" {
		res.Category = c.Category()
	}
	if res.Name == "" {
		res.Name = c.Name()
	}
	return res
}

// Count returns how many results have status s.
func (r *Report) Count(s CheckStatus) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// HasErrors reports whether any check failed.
func (r *Report) HasErrors() bool {
	return r.Count(StatusError) > 0
}

// Print writes the report grouped by category, then the details and fix
// hints of every check that did not pass.
func (r *Report) Print(w io.Writer) {
	for _, cat := range CategoryOrder {
		var rows []*CheckResult
		for _, res := range r.Results {
			if res.Category == cat {
				rows = append(rows, res)
			}
		}
		if len(rows) == 0 {
			continue
		}

		fmt.Fprintln(w, style.Bold.Render(cat))
		tbl := style.NewTable(
			style.Column{Name: "", Width: 2},
			style.Column{Name: "CHECK", Width: 18},
			style.Column{Name: "RESULT", Width: 56},
		).SetHeaderSeparator(false)
		for _, res := range rows {
			tbl.AddRow(statusIcon(res.Status), res.Name, res.Message)
		}
		fmt.Fprint(w, tbl.Render())
		fmt.Fprintln(w)
	}

	for _, res := range r.Results {
		if res.Status == StatusOK || (len(res.Details) == 0 && res.FixHint == "") {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", statusIcon(res.Status), style.Bold.Render(res.Name))
		for _, d := range res.Details {
			fmt.Fprintf(w, "    %s\n", d)
		}
		if res.FixHint != "" {
			fmt.Fprintf(w, "    %s %s\n", style.Dim.Render("fix:"), res.FixHint)
		}
	}

	fmt.Fprintf(w, "%d passed, %d warnings, %d errors\n",
		r.Count(StatusOK), r.Count(StatusWarning), r.Count(StatusError))
}

func statusIcon(s CheckStatus) string {
	switch s {
	case StatusOK:
		return style.SuccessPrefix
	case StatusWarning:
		return style.WarningPrefix
	}
	return style.ErrorPrefix
}
