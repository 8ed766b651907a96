package primary

import "context"

// CatalogService defines the primary port for catalog management.
type CatalogService interface {
	// ImportCatalog replaces the stored catalog with the tables found in dir.
	ImportCatalog(ctx context.Context, dir string) (*ImportCatalogResponse, error)

	// GetCatalog returns the stored catalog.
	GetCatalog(ctx context.Context) (*Catalog, error)
}

// ImportCatalogResponse reports the number of rows imported per table.
type ImportCatalogResponse struct {
	Workers      int
	Equipment    int
	Requirements int
	Plan         int
	History      int
}

// Catalog is the stored catalog.
type Catalog struct {
	Professions  []string
	Workers      []*Worker
	Equipment    []*Equipment
	Requirements []*Requirement
	Plan         []*PlanEntry
	History      []*HistoryEntry
}

// Worker is a catalog worker with derived profession data.
type Worker struct {
	ID        string
	Name      string
	Ranks     map[string]int
	Primary   string
	Qualified []string
}

// Equipment is a machine.
type Equipment struct {
	ID          string
	MachineType string
}

// Requirement is one position a machine type needs.
type Requirement struct {
	MachineType string
	Position    string
	MinRank     int
}

// PlanEntry is the production plan for one machine in one week.
type PlanEntry struct {
	MachineID string
	Week      int
	Day       bool
	Evening   bool
	Night     bool
}

// HistoryEntry is the shift a worker worked in a past week.
type HistoryEntry struct {
	WorkerID string
	Week     int
	Shift    string
}
