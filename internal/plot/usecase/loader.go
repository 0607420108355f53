package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/MangalamGSinha/goplot/internal/pkg/pkgerror"
	"github.com/MangalamGSinha/goplot/internal/plot/entity"
)

// dateLayouts are the recognized datetime patterns, tried in order. A
// column is datetime only when every non-empty cell parses with the same
// layout; this keeps inference conservative for mixed or ambiguous data.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
}

func loadTable(ctx context.Context, r io.Reader) (*entity.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, pkgerror.NewMalformedInput(errors.New("empty file"))
	}
	if err != nil {
		return nil, pkgerror.NewMalformedInput(err)
	}

	names := make([]string, len(header))
	seen := make(map[string]struct{}, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, pkgerror.NewMalformedInput(fmt.Errorf("column %d has an empty name", i+1))
		}
		if _, dup := seen[name]; dup {
			return nil, pkgerror.NewMalformedInput(fmt.Errorf("duplicate column name: %s", name))
		}
		seen[name] = struct{}{}
		names[i] = name
	}

	cells := make([][]string, len(names))
	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.Reader reports ragged rows and quoting problems here.
			slog.WarnContext(ctx, "failed to read csv line", "error", err)
			return nil, pkgerror.NewMalformedInput(err)
		}

		for i := range names {
			cells[i] = append(cells[i], strings.TrimSpace(record[i]))
		}
		rows++
	}

	if rows == 0 {
		return nil, pkgerror.NewMalformedInput(errors.New("dataset has no rows"))
	}

	table := &entity.Table{Rows: rows, Columns: make([]entity.Column, len(names))}
	for i, name := range names {
		table.Columns[i] = inferColumn(name, cells[i])
	}

	return table, nil
}

// inferColumn applies the best-effort per-column type rule: numeric when
// every non-empty cell parses as a number, datetime when every non-empty
// cell matches one recognized layout, otherwise categorical. A column with
// no values at all stays categorical.
func inferColumn(name string, cells []string) entity.Column {
	col := entity.Column{Name: name, Type: entity.ColumnCategorical, Cells: cells}

	hasValue := false
	numeric := true
	floats := make([]float64, len(cells))
	for i, cell := range cells {
		if cell == "" {
			floats[i] = math.NaN()
			continue
		}
		hasValue = true
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			numeric = false
			break
		}
		floats[i] = v
	}
	if !hasValue {
		return col
	}
	if numeric {
		col.Type = entity.ColumnNumeric
		col.Floats = floats
		return col
	}

	for _, layout := range dateLayouts {
		times := make([]time.Time, len(cells))
		ok := true
		for i, cell := range cells {
			if cell == "" {
				continue
			}
			t, err := time.Parse(layout, cell)
			if err != nil {
				ok = false
				break
			}
			times[i] = t
		}
		if ok {
			col.Type = entity.ColumnDatetime
			col.Times = times
			return col
		}
	}

	return col
}
