// Package tabular reads and writes the CSV tables exchanged with planners.
package tabular

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/shiftplan/internal/ports/secondary"
)

// File names of the catalog tables inside an import directory.
const (
	WorkersFile      = "workers.csv"
	EquipmentFile    = "equipment.csv"
	RequirementsFile = "position_requirements.csv"
	PlanFile         = "plan.csv"
	HistoryFile      = "assignment_history.csv"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrMissingColumn is returned when a table lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// CSVAdapter implements secondary.CatalogSource and secondary.AssignmentSink
// over CSV files.
type CSVAdapter struct{}

// NewCSVAdapter creates a new CSV adapter.
func NewCSVAdapter() *CSVAdapter {
	return &CSVAdapter{}
}

var (
	_ secondary.CatalogSource  = (*CSVAdapter)(nil)
	_ secondary.AssignmentSink = (*CSVAdapter)(nil)
)

// table is a parsed CSV file with a header index.
type table struct {
	name    string
	columns map[string]int
	rows    [][]string
}

func readTable(path string, required ...string) (*table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty", filepath.Base(path))
	}

	t := &table{name: filepath.Base(path), columns: make(map[string]int), rows: records[1:]}
	for i, col := range records[0] {
		t.columns[strings.TrimSpace(col)] = i
	}
	for _, col := range required {
		if _, ok := t.columns[col]; !ok {
			return nil, fmt.Errorf("%w %q in %s", ErrMissingColumn, col, t.name)
		}
	}
	return t, nil
}

func (t *table) get(row []string, col string) string {
	i, ok := t.columns[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *table) intField(row []string, line int, col string) (int, error) {
	raw := t.get(row, col)
	if raw == "" {
		return 0, nil
	}
	// Spreadsheet exports write whole numbers as "2.0".
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == float64(int(f)) {
		return int(f), nil
	}
	return 0, fmt.Errorf("%s line %d: %s: invalid integer %q", t.name, line, col, raw)
}

func (t *table) boolField(row []string, line int, col string) (bool, error) {
	raw := strings.ToLower(t.get(row, col))
	switch raw {
	case "true", "1", "yes", "y", "1.0":
		return true, nil
	case "", "false", "0", "no", "n", "0.0":
		return false, nil
	}
	return false, fmt.Errorf("%s line %d: %s: invalid boolean %q", t.name, line, col, raw)
}

// ReadCatalog reads the five catalog tables from dir.
func (a *CSVAdapter) ReadCatalog(ctx context.Context, dir string, professions []string) (*secondary.CatalogSnapshot, error) {
	snap := &secondary.CatalogSnapshot{}

	workers, err := readTable(filepath.Join(dir, WorkersFile), "worker_id", "name")
	if err != nil {
		return nil, err
	}
	for i, row := range workers.rows {
		line := i + 2
		w := &secondary.WorkerRecord{
			ID:    workers.get(row, "worker_id"),
			Name:  workers.get(row, "name"),
			Ranks: make(map[string]int, len(professions)),
		}
		if w.ID == "" {
			return nil, fmt.Errorf("%s line %d: empty worker_id", workers.name, line)
		}
		for _, p := range professions {
			rank, err := workers.intField(row, line, p)
			if err != nil {
				return nil, err
			}
			w.Ranks[p] = rank
		}
		snap.Workers = append(snap.Workers, w)
	}

	equipment, err := readTable(filepath.Join(dir, EquipmentFile), "machine_id", "machine_type")
	if err != nil {
		return nil, err
	}
	for _, row := range equipment.rows {
		snap.Equipment = append(snap.Equipment, &secondary.EquipmentRecord{
			ID:          equipment.get(row, "machine_id"),
			MachineType: equipment.get(row, "machine_type"),
		})
	}

	reqs, err := readTable(filepath.Join(dir, RequirementsFile), "machine_type", "position", "min_rank")
	if err != nil {
		return nil, err
	}
	for i, row := range reqs.rows {
		minRank, err := reqs.intField(row, i+2, "min_rank")
		if err != nil {
			return nil, err
		}
		snap.Requirements = append(snap.Requirements, &secondary.RequirementRecord{
			MachineType: reqs.get(row, "machine_type"),
			Position:    reqs.get(row, "position"),
			MinRank:     minRank,
		})
	}

	plan, err := readTable(filepath.Join(dir, PlanFile), "machine_id", "week", "day", "evening", "night")
	if err != nil {
		return nil, err
	}
	for i, row := range plan.rows {
		line := i + 2
		p := &secondary.PlanRecord{MachineID: plan.get(row, "machine_id")}
		if p.Week, err = plan.intField(row, line, "week"); err != nil {
			return nil, err
		}
		if p.Day, err = plan.boolField(row, line, "day"); err != nil {
			return nil, err
		}
		if p.Evening, err = plan.boolField(row, line, "evening"); err != nil {
			return nil, err
		}
		if p.Night, err = plan.boolField(row, line, "night"); err != nil {
			return nil, err
		}
		snap.Plan = append(snap.Plan, p)
	}

	history, err := readTable(filepath.Join(dir, HistoryFile), "worker_id", "week", "shift")
	if err != nil {
		return nil, err
	}
	for i, row := range history.rows {
		week, err := history.intField(row, i+2, "week")
		if err != nil {
			return nil, err
		}
		snap.History = append(snap.History, &secondary.HistoryRecord{
			WorkerID: history.get(row, "worker_id"),
			Week:     week,
			Shift:    strings.ToLower(history.get(row, "shift")),
		})
	}

	return snap, nil
}

// assignmentHeader is the column layout of exported schedules.
var assignmentHeader = []string{"week", "shift", "machine_id", "machine_type", "position", "min_rank", "worker_id", "name"}

// WriteAssignments writes records to path as UTF-8 CSV with a BOM so
// spreadsheet applications detect the encoding.
func (a *CSVAdapter) WriteAssignments(ctx context.Context, path string, records []*secondary.AssignmentRecord) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := encodeAssignments(f, records); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func encodeAssignments(w io.Writer, records []*secondary.AssignmentRecord) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(assignmentHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{
			strconv.Itoa(r.Week),
			r.Shift,
			r.MachineID,
			r.MachineType,
			r.Position,
			strconv.Itoa(r.MinRank),
			r.WorkerID,
			r.WorkerName,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
