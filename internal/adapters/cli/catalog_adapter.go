package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/example/shiftplan/internal/ports/primary"
)

// CatalogAdapter translates CLI operations to CatalogService calls.
type CatalogAdapter struct {
	service primary.CatalogService
	out     io.Writer
}

// NewCatalogAdapter creates a new CatalogAdapter with the given service.
func NewCatalogAdapter(service primary.CatalogService, out io.Writer) *CatalogAdapter {
	return &CatalogAdapter{
		service: service,
		out:     out,
	}
}

// Import loads the catalog tables from dir.
func (a *CatalogAdapter) Import(ctx context.Context, dir string) error {
	resp, err := a.service.ImportCatalog(ctx, dir)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s Imported catalog from %s\n", okTag, dir)
	fmt.Fprintf(a.out, "  workers:      %d\n", resp.Workers)
	fmt.Fprintf(a.out, "  equipment:    %d\n", resp.Equipment)
	fmt.Fprintf(a.out, "  requirements: %d\n", resp.Requirements)
	fmt.Fprintf(a.out, "  plan:         %d\n", resp.Plan)
	fmt.Fprintf(a.out, "  history:      %d\n", resp.History)
	return nil
}

func (a *CatalogAdapter) catalog(ctx context.Context) (*primary.Catalog, error) {
	cat, err := a.service.GetCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}
	return cat, nil
}

// Workers lists workers with their ranks and derived professions.
func (a *CatalogAdapter) Workers(ctx context.Context) error {
	cat, err := a.catalog(ctx)
	if err != nil {
		return err
	}
	if len(cat.Workers) == 0 {
		fmt.Fprintln(a.out, "No workers found")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	header := []string{"ID", "NAME"}
	for _, p := range cat.Professions {
		header = append(header, strings.ToUpper(p))
	}
	header = append(header, "PRIMARY")
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, wk := range cat.Workers {
		row := []string{wk.ID, wk.Name}
		for _, p := range cat.Professions {
			row = append(row, fmt.Sprint(wk.Ranks[p]))
		}
		primaryProf := wk.Primary
		if primaryProf == "" {
			primaryProf = "-"
		}
		row = append(row, primaryProf)
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

// Equipment lists machines.
func (a *CatalogAdapter) Equipment(ctx context.Context) error {
	cat, err := a.catalog(ctx)
	if err != nil {
		return err
	}
	if len(cat.Equipment) == 0 {
		fmt.Fprintln(a.out, "No equipment found")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MACHINE\tTYPE")
	for _, e := range cat.Equipment {
		fmt.Fprintf(w, "%s\t%s\n", e.ID, e.MachineType)
	}
	return w.Flush()
}

// Requirements lists the positions each machine type needs.
func (a *CatalogAdapter) Requirements(ctx context.Context) error {
	cat, err := a.catalog(ctx)
	if err != nil {
		return err
	}
	if len(cat.Requirements) == 0 {
		fmt.Fprintln(a.out, "No position requirements found")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tPOSITION\tMIN RANK")
	for _, r := range cat.Requirements {
		fmt.Fprintf(w, "%s\t%s\t%d\n", r.MachineType, r.Position, r.MinRank)
	}
	return w.Flush()
}

// Plan lists the production plan, optionally for one week.
func (a *CatalogAdapter) Plan(ctx context.Context, week int) error {
	cat, err := a.catalog(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MACHINE\tWEEK\tDAY\tEVENING\tNIGHT")
	rows := 0
	for _, p := range cat.Plan {
		if week != 0 && p.Week != week {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", p.MachineID, p.Week, mark(p.Day), mark(p.Evening), mark(p.Night))
		rows++
	}
	if rows == 0 {
		fmt.Fprintln(a.out, "No plan entries found")
		return nil
	}
	return w.Flush()
}

// History lists the shift history, optionally for one week.
func (a *CatalogAdapter) History(ctx context.Context, week int) error {
	cat, err := a.catalog(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORKER\tWEEK\tSHIFT")
	rows := 0
	for _, h := range cat.History {
		if week != 0 && h.Week != week {
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", h.WorkerID, h.Week, h.Shift)
		rows++
	}
	if rows == 0 {
		fmt.Fprintln(a.out, "No history entries found")
		return nil
	}
	return w.Flush()
}

func mark(on bool) string {
	if on {
		return "x"
	}
	return "-"
}
