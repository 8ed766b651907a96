// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// CatalogRepository defines the secondary port for catalog persistence.
type CatalogRepository interface {
	// Replace swaps the stored catalog for snap in one transaction.
	Replace(ctx context.Context, snap *CatalogSnapshot) error

	// Load reads the whole catalog.
	Load(ctx context.Context) (*CatalogSnapshot, error)
}

// CatalogSource reads catalog tables from an external location.
type CatalogSource interface {
	// ReadCatalog reads the five catalog tables from dir. professions names
	// the rank columns expected in the workers table.
	ReadCatalog(ctx context.Context, dir string, professions []string) (*CatalogSnapshot, error)
}

// CatalogSnapshot is the full set of catalog tables.
type CatalogSnapshot struct {
	Workers      []*WorkerRecord
	Equipment    []*EquipmentRecord
	Requirements []*RequirementRecord
	Plan         []*PlanRecord
	History      []*HistoryRecord
}

// WorkerRecord represents a worker as stored in persistence.
type WorkerRecord struct {
	ID    string
	Name  string
	Ranks map[string]int // profession -> rank, 0 when not held
}

// EquipmentRecord represents a machine.
type EquipmentRecord struct {
	ID          string
	MachineType string
}

// RequirementRecord is one position a machine type needs.
type RequirementRecord struct {
	MachineType string
	Position    string
	MinRank     int
}

// PlanRecord is the production plan for one machine in one week.
type PlanRecord struct {
	MachineID string
	Week      int
	Day       bool
	Evening   bool
	Night     bool
}

// HistoryRecord is the shift a worker worked in a past week.
type HistoryRecord struct {
	WorkerID string
	Week     int
	Shift    string
}
