package app

import (
	"context"
	"fmt"

	"github.com/example/shiftplan/internal/core/roster"
	"github.com/example/shiftplan/internal/logging"
	"github.com/example/shiftplan/internal/ports/primary"
	"github.com/example/shiftplan/internal/ports/secondary"
)

// CatalogServiceImpl implements the CatalogService interface.
type CatalogServiceImpl struct {
	repo        secondary.CatalogRepository
	source      secondary.CatalogSource
	logger      logging.Logger
	professions []roster.Profession
}

// NewCatalogService creates a new CatalogService with injected dependencies.
func NewCatalogService(repo secondary.CatalogRepository, source secondary.CatalogSource, logger logging.Logger, professions []roster.Profession) *CatalogServiceImpl {
	if len(professions) == 0 {
		professions = roster.DefaultProfessions
	}
	return &CatalogServiceImpl{
		repo:        repo,
		source:      source,
		logger:      logger,
		professions: professions,
	}
}

var _ primary.CatalogService = (*CatalogServiceImpl)(nil)

// ImportCatalog replaces the stored catalog with the tables found in dir.
func (s *CatalogServiceImpl) ImportCatalog(ctx context.Context, dir string) (*primary.ImportCatalogResponse, error) {
	// 1. Read the tables
	snap, err := s.source.ReadCatalog(ctx, dir, professionNames(s.professions))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read catalog from %s: %w", ErrBoundaryIO, dir, err)
	}

	// 2. Validate
	if err := s.validate(snap); err != nil {
		return nil, err
	}

	// 3. Store
	if err := s.repo.Replace(ctx, snap); err != nil {
		return nil, fmt.Errorf("%w: failed to store catalog: %w", ErrBoundaryIO, err)
	}

	resp := &primary.ImportCatalogResponse{
		Workers:      len(snap.Workers),
		Equipment:    len(snap.Equipment),
		Requirements: len(snap.Requirements),
		Plan:         len(snap.Plan),
		History:      len(snap.History),
	}
	s.logger.Info("catalog imported", "dir", dir,
		"workers", resp.Workers, "equipment", resp.Equipment,
		"requirements", resp.Requirements, "plan", resp.Plan, "history", resp.History)
	return resp, nil
}

func (s *CatalogServiceImpl) validate(snap *secondary.CatalogSnapshot) error {
	workers := make(map[string]bool, len(snap.Workers))
	for _, w := range snap.Workers {
		if w.ID == "" {
			return fmt.Errorf("%w: worker without id", ErrInvalidCatalog)
		}
		if workers[w.ID] {
			return fmt.Errorf("%w: duplicate worker id %q", ErrInvalidCatalog, w.ID)
		}
		workers[w.ID] = true
	}

	machines := make(map[string]bool, len(snap.Equipment))
	for _, e := range snap.Equipment {
		if machines[e.ID] {
			return fmt.Errorf("%w: duplicate machine id %q", ErrInvalidCatalog, e.ID)
		}
		machines[e.ID] = true
	}

	for _, r := range snap.Requirements {
		if r.MinRank < 0 {
			return fmt.Errorf("%w: negative min_rank for %s/%s", ErrInvalidCatalog, r.MachineType, r.Position)
		}
	}

	for _, p := range snap.Plan {
		if p.Week < 1 || p.Week > 53 {
			return fmt.Errorf("%w: plan week %d for machine %s", ErrInvalidCatalog, p.Week, p.MachineID)
		}
		if !machines[p.MachineID] {
			s.logger.Warn("plan references unknown machine", "machine_id", p.MachineID, "week", p.Week)
		}
	}

	for _, h := range snap.History {
		if _, err := roster.ParseShift(h.Shift); err != nil {
			return fmt.Errorf("%w: history of worker %s in week %d: %w", ErrInvalidCatalog, h.WorkerID, h.Week, err)
		}
		if !workers[h.WorkerID] {
			s.logger.Warn("history references unknown worker", "worker_id", h.WorkerID, "week", h.Week)
		}
	}
	return nil
}

// GetCatalog returns the stored catalog.
func (s *CatalogServiceImpl) GetCatalog(ctx context.Context) (*primary.Catalog, error) {
	snap, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load catalog: %w", ErrBoundaryIO, err)
	}

	cat, _ := buildCatalog(snap, s.professions)
	out := &primary.Catalog{Professions: professionNames(s.professions)}
	for _, w := range cat.Workers {
		out.Workers = append(out.Workers, workerToDTO(w))
	}
	for _, e := range snap.Equipment {
		out.Equipment = append(out.Equipment, &primary.Equipment{ID: e.ID, MachineType: e.MachineType})
	}
	for _, r := range snap.Requirements {
		out.Requirements = append(out.Requirements, &primary.Requirement{
			MachineType: r.MachineType,
			Position:    r.Position,
			MinRank:     r.MinRank,
		})
	}
	for _, p := range snap.Plan {
		out.Plan = append(out.Plan, &primary.PlanEntry{
			MachineID: p.MachineID,
			Week:      p.Week,
			Day:       p.Day,
			Evening:   p.Evening,
			Night:     p.Night,
		})
	}
	for _, h := range snap.History {
		out.History = append(out.History, &primary.HistoryEntry{WorkerID: h.WorkerID, Week: h.Week, Shift: h.Shift})
	}
	return out, nil
}
