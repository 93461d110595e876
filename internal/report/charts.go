package report

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"finanze/internal/core"
	"finanze/internal/ledger"
)

// ErrNotEnoughData is returned by the line charts when fewer than two months
// are available; a line needs two points.
var ErrNotEnoughData = errors.New("not enough data to draw a chart")

// CategoryPie renders the expense-distribution pie as a PNG. The breakdown
// must be non-empty.
func CategoryPie(breakdown []ledger.CategoryAmount) ([]byte, error) {
	if len(breakdown) == 0 {
		return nil, ErrNotEnoughData
	}
	values := make([]chart.Value, len(breakdown))
	for i, row := range breakdown {
		values[i] = chart.Value{
			Value: row.Amount.Euros(),
			Label: string(row.Category),
		}
	}
	pie := chart.PieChart{
		Title:  "Distribuzione spese",
		Width:  512,
		Height: 512,
		Values: values,
	}
	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render category pie: %w", err)
	}
	return buf.Bytes(), nil
}

// SalaryPie renders the salary-vs-expenses pie as a PNG. The split's income
// must be positive.
func SalaryPie(split ledger.Split) ([]byte, error) {
	if split.Income.Cents <= 0 {
		return nil, ErrNotEnoughData
	}
	pie := chart.PieChart{
		Title:  "Stipendio vs Spese",
		Width:  512,
		Height: 512,
		Values: []chart.Value{
			{
				Value: split.Expense.Euros(),
				Label: "Spese totali",
				Style: chart.Style{FillColor: drawing.ColorFromHex("ff9999")},
			},
			{
				Value: split.Remainder.Euros(),
				Label: "Stipendio rimanente",
				Style: chart.Style{FillColor: drawing.ColorFromHex("99ff99")},
			},
		},
	}
	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render salary pie: %w", err)
	}
	return buf.Bytes(), nil
}

// SavingsChart renders the cumulative-savings line chart as a PNG.
func SavingsChart(series []ledger.MonthlyPoint) ([]byte, error) {
	if len(series) < 2 {
		return nil, ErrNotEnoughData
	}
	xs := make([]time.Time, len(series))
	ys := make([]float64, len(series))
	for i, p := range series {
		xs[i] = p.Month.Start()
		ys[i] = p.CumulativeSavings.Euros()
	}
	graph := chart.Chart{
		Title:  "Andamento risparmio cumulativo",
		Width:  900,
		Height: 420,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01"),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Risparmio cumulativo",
				XValues: xs,
				YValues: ys,
			},
		},
	}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render savings chart: %w", err)
	}
	return buf.Bytes(), nil
}

// WalletsChart renders one cumulative line per wallet as a PNG.
func WalletsChart(series []ledger.WalletPoint) ([]byte, error) {
	if len(series) < 2 {
		return nil, ErrNotEnoughData
	}
	xs := make([]time.Time, len(series))
	for i, p := range series {
		xs[i] = p.Month.Start()
	}
	lines := make([]chart.Series, 0, len(core.Wallets))
	for _, w := range core.Wallets {
		ys := make([]float64, len(series))
		for i, p := range series {
			ys[i] = p.Balances[w].Euros()
		}
		lines = append(lines, chart.TimeSeries{
			Name:    string(w),
			XValues: xs,
			YValues: ys,
		})
	}
	graph := chart.Chart{
		Title:  "Andamento portafogli",
		Width:  900,
		Height: 420,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01"),
		},
		Series: lines,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render wallets chart: %w", err)
	}
	return buf.Bytes(), nil
}
