// Package report renders a completed analysis run into an xlsx workbook:
// the full time series on one sheet plus a line chart of per-plant actual
// evapotranspiration with a highlighted total.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/agroclima/agroclima/internal/model/entities"
)

const sheetName = "Results"

// Schema is the explicit column layout of the results sheet. Helpers resolve
// columns against it by name; nothing reads a shared table.
type Schema struct {
	Columns []string
}

// ColumnLetter resolves a named column to its spreadsheet letter.
func (s Schema) ColumnLetter(name string) (string, error) {
	for i, c := range s.Columns {
		if c == name {
			return excelize.ColumnNumberToName(i + 1)
		}
	}
	return "", fmt.Errorf("column %q not in schema", name)
}

// BuildSchema lays out the sheet: weather first, then ET0, then the four
// per-plant series in declared plant order, and the total last.
func BuildSchema(series []entities.PlantSeries) Schema {
	cols := []string{"time", "T", "u2", "RH", "GHI", "Precip_mm", "ET0"}
	for _, ps := range series {
		p := ps.Profile.Type
		cols = append(cols,
			"theta_"+p, "ks_"+p, "ET_actual_"+p, "cooling_kwh_"+p)
	}
	cols = append(cols, "ET_actual_total")
	return Schema{Columns: cols}
}

// Write renders the workbook at path. All slices share the weather series
// length; the caller guarantees that.
func Write(path string, records []entities.WeatherRecord, et0 []float64, series []entities.PlantSeries, totals []float64) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	schema := BuildSchema(series)
	setCell := func(colName string, row int, value interface{}) error {
		letter, err := schema.ColumnLetter(colName)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheetName, fmt.Sprintf("%s%d", letter, row), value)
	}

	for _, name := range schema.Columns {
		if err := setCell(name, 1, name); err != nil {
			return err
		}
	}

	type cell struct {
		col string
		val interface{}
	}
	for t, rec := range records {
		row := t + 2
		timeVal := interface{}(t)
		if !rec.Timestamp.IsZero() {
			timeVal = rec.Timestamp.Format("2006-01-02 15:04")
		}
		cells := []cell{
			{"time", timeVal},
			{"T", rec.TempC},
			{"u2", rec.WindSpeedMS},
			{"RH", rec.RelHumidityPct},
			{"GHI", rec.GHIWm2},
			{"Precip_mm", rec.PrecipMM},
			{"ET0", et0[t]},
			{"ET_actual_total", totals[t]},
		}
		for _, ps := range series {
			p := ps.Profile.Type
			step := ps.Steps[t]
			cells = append(cells,
				cell{"theta_" + p, step.Theta},
				cell{"ks_" + p, step.Ks},
				cell{"ET_actual_" + p, step.ETActualMM},
				cell{"cooling_kwh_" + p, step.CoolingKWh},
			)
		}
		for _, c := range cells {
			if err := setCell(c.col, row, c.val); err != nil {
				return err
			}
		}
	}

	if err := addETChart(f, schema, series, len(records)); err != nil {
		return err
	}
	return f.SaveAs(path)
}

// addETChart draws one line per plant ET_actual series plus the total with a
// heavier solid line.
func addETChart(f *excelize.File, schema Schema, series []entities.PlantSeries, n int) error {
	timeLetter, err := schema.ColumnLetter("time")
	if err != nil {
		return err
	}
	categories := fmt.Sprintf("%s!$%s$2:$%s$%d", sheetName, timeLetter, timeLetter, n+1)

	seriesRef := func(col string, width float64) (excelize.ChartSeries, error) {
		letter, err := schema.ColumnLetter(col)
		if err != nil {
			return excelize.ChartSeries{}, err
		}
		return excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", sheetName, letter),
			Categories: categories,
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", sheetName, letter, letter, n+1),
			Line:       excelize.ChartLine{Width: width},
		}, nil
	}

	var chartSeries []excelize.ChartSeries
	for _, ps := range series {
		cs, err := seriesRef("ET_actual_"+ps.Profile.Type, 1.0)
		if err != nil {
			return err
		}
		chartSeries = append(chartSeries, cs)
	}
	total, err := seriesRef("ET_actual_total", 2.5)
	if err != nil {
		return err
	}
	chartSeries = append(chartSeries, total)

	anchorCol, err := excelize.ColumnNumberToName(len(schema.Columns) + 2)
	if err != nil {
		return err
	}
	return f.AddChart(sheetName, anchorCol+"2", &excelize.Chart{
		Type:   excelize.Line,
		Series: chartSeries,
		Title:  []excelize.RichTextRun{{Text: "Actual evapotranspiration (mm/h)"}},
	})
}
