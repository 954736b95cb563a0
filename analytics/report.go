package analytics

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
)

// Report is everything the Org performance report renders.
type Report struct {
	Instrument   string
	Created      time.Time
	Start        time.Time
	End          time.Time
	StartBalance float64

	Snapshot  Snapshot
	Curve     Curve
	Breakdown Breakdown
	Months    []MonthBucket

	EquityPNG   string
	Notes       []string
	NextActions []string
}

// NewReport runs every aggregation over trades (oldest-first).
func NewReport(instrument string, trades []journal.Trade, startBalance float64) Report {
	r := Report{
		Instrument:   instrument,
		StartBalance: startBalance,
		Snapshot:     Compute(trades),
		Curve:        Equity(trades, startBalance),
		Breakdown:    BreakdownOf(trades),
		Months:       Monthly(trades),
	}
	if len(trades) > 0 {
		r.Start = trades[0].CreatedAt
		r.End = trades[len(trades)-1].CreatedAt
	}
	return r
}

var reportOrgFuncs = template.FuncMap{
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
	"money": func(x float64) string { return fmt.Sprintf("%.2f", x) },
}

var reportOrg = template.Must(template.New("report").Funcs(reportOrgFuncs).Parse(ReportOrgTemplate))

// WriteOrg renders r as an Org-mode document.
func WriteOrg(w io.Writer, r Report) error {
	if err := reportOrg.Execute(w, r); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

const ReportOrgTemplate = `* PERFORMANCE: {{.Instrument}}
:PROPERTIES:
:INSTRUMENT:  {{.Instrument}}
{{- if not .Snapshot.Empty}}
:START_DATE:  {{.Start.Format "2006-01-02"}}
:END_DATE:    {{.End.Format "2006-01-02"}}
{{- end}}
:START_BAL:   {{money .Curve.StartBalance}}
:END_BAL:     {{money .Curve.EndBalance}}
:NET_PL:      {{money .Snapshot.TotalPnL}}
:RETURN_PCT:  {{money .Curve.ReturnPct}}
:MAX_DD_PCT:  {{money .Curve.MaxDDPct}}
:TRADES:      {{.Snapshot.TotalTrades}}
:WINS:        {{.Snapshot.WinningTrades}}
:LOSSES:      {{.Snapshot.LosingTrades}}
:WIN_RATE:    {{money .Snapshot.WinRate}}
:PROFIT_FAC:  {{if ne .Snapshot.ProfitFactor 0.0}}{{money .Snapshot.ProfitFactor}}{{else}}(profit-factor?){{end}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:
{{if .Snapshot.Empty}}
No trades recorded yet.
{{else}}
** Performance Summary
- Net P/L:          *{{money .Snapshot.TotalPnL}}*
- Return:           *{{money .Curve.ReturnPct}}%*
- Max Drawdown:     *{{money .Curve.MaxDDPct}}%*
- Win Rate:         *{{money .Snapshot.WinRate}}%*
- Profit Factor:    *{{if ne .Snapshot.ProfitFactor 0.0}}{{money .Snapshot.ProfitFactor}}{{else}}(profit-factor?){{end}}*
- Average Win:      *{{money .Snapshot.AverageWin}}*
- Average Loss:     *{{money .Snapshot.AverageLoss}}*
- Best / Worst:     *{{money .Snapshot.BestTrade}}* / *{{money .Snapshot.WorstTrade}}*
- Streaks:          *{{.Snapshot.MaxWinStreak}}W* / *{{.Snapshot.MaxLossStreak}}L*

** Equity Curve
{{- if .EquityPNG }}
[[file:{{.EquityPNG}}]]
{{- else }}
# (optional) insert an exported equity curve image here
{{- end }}

** Trade Distribution
| Outcome  | Count |
|----------+-------|
| Wins     | {{.Snapshot.WinningTrades}} |
| Losses   | {{.Snapshot.LosingTrades}} |
| Total    | {{.Snapshot.TotalTrades}} |
| Buy      | {{.Breakdown.Buys}} |
| Sell     | {{.Breakdown.Sells}} |

** Monthly
| Month   | Trades |    P/L |
|---------+--------+--------|
{{- range .Months }}
| {{.Label}} | {{.Trades}} | {{money .PnL}} |
{{- end }}
{{- end }}

{{- if .Notes }}
** Observations
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}

{{- if .NextActions }}
** Notes / Next Actions
{{- range .NextActions }}
- [ ] {{.}}
{{- end }}
{{- end }}
`
