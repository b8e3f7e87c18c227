package measurements

import (
	"context"
	"errors"
	"fmt"
	"time"

	"withings-health-sync/internal/platform/logger"
	"withings-health-sync/internal/platform/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const (
	TriggerManual       = "manual"
	TriggerNotification = "notification"
)

type ServiceConfig struct {
	// Types limita los tipos que se piden a Withings; nil = todos.
	Types  []MeasurementType
	Logger logger.Logger
}

type Service struct {
	repo  Repository
	src   Source
	types []MeasurementType
	log   logger.Logger
	now   func() time.Time
}

func NewService(repo Repository, src Source, cfg ServiceConfig) *Service {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:  repo,
		src:   src,
		types: cfg.Types,
		log:   log.With(map[string]any{"component": "measurements"}),
		now:   time.Now,
	}
}

type SyncResult struct {
	RunID   string
	Trigger string
	Since   time.Time
	Until   time.Time
	Groups  int
}

// Sync pide a Withings los grupos modificados desde el último cursor,
// los guarda y avanza el cursor al inicio de esta corrida.
func (s *Service) Sync(ctx context.Context) (SyncResult, error) {
	started := s.now().UTC()

	since, ok, err := s.repo.LastSync(ctx)
	if err != nil {
		return SyncResult{}, fmt.Errorf("read sync cursor: %w", err)
	}
	if !ok {
		since = time.Unix(0, 0).UTC()
	}

	res := SyncResult{
		RunID:   uuid.NewString(),
		Trigger: TriggerManual,
		Since:   since,
		Until:   started,
	}
	log := s.log.With(map[string]any{"sync_run": res.RunID, "trigger": res.Trigger})

	groups, err := s.src.GetMeasurementSince(ctx, since, s.types)
	if err == nil {
		err = s.store(ctx, groups)
	}
	if err == nil {
		err = s.repo.SetLastSync(ctx, started)
	}
	metrics.ObserveSync(res.Trigger, metrics.Result(err), time.Since(started))
	if err != nil {
		log.Error("sync failed", map[string]any{"since": since, "err": err})
		return SyncResult{}, err
	}

	res.Groups = len(groups)
	metrics.AddSyncedGroups(res.Groups)
	log.Info("sync done", map[string]any{"since": since, "groups": res.Groups})
	return res, nil
}

// Notify sincroniza el período de una notificación para los tipos de su categoría.
// No mueve el cursor de Sync.
func (s *Service) Notify(ctx context.Context, call WebhookCall) (SyncResult, error) {
	types, err := MeasurementTypesForNotification(call.Category)
	if err != nil {
		return SyncResult{}, err
	}
	types = s.restrict(types)

	started := s.now().UTC()
	res := SyncResult{
		RunID:   uuid.NewString(),
		Trigger: TriggerNotification,
		Since:   call.StartDate,
		Until:   call.EndDate,
	}
	if len(types) == 0 {
		return res, nil
	}
	log := s.log.With(map[string]any{"sync_run": res.RunID, "trigger": res.Trigger, "category": call.Category.String()})

	groups, err := s.src.GetMeasurementInPeriod(ctx, call.StartDate, call.EndDate, types)
	if err == nil {
		err = s.store(ctx, groups)
	}
	metrics.ObserveSync(res.Trigger, metrics.Result(err), time.Since(started))
	if err != nil {
		log.Error("notification sync failed", map[string]any{"err": err})
		return SyncResult{}, err
	}

	res.Groups = len(groups)
	metrics.AddSyncedGroups(res.Groups)
	log.Info("notification sync done", map[string]any{"groups": res.Groups})
	return res, nil
}

// Latest agrega los grupos guardados al valor más reciente por tipo.
func (s *Service) Latest(ctx context.Context, types []MeasurementType) (map[MeasurementType]float64, error) {
	groups, err := s.repo.ListGroups(ctx, ListFilter{})
	if err != nil {
		return nil, err
	}
	return Aggregate(groups, types), nil
}

// List devuelve los grupos guardados del período; con types != nil
// se quitan las medidas de otros tipos y los grupos que quedan vacíos.
func (s *Service) List(ctx context.Context, filter ListFilter, types []MeasurementType) ([]MeasurementGroup, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, ErrInvalidInput
	}
	groups, err := s.repo.ListGroups(ctx, filter)
	if err != nil {
		return nil, err
	}
	if types == nil {
		return groups, nil
	}
	return filterGroups(groups, types), nil
}

func (s *Service) store(ctx context.Context, groups []MeasurementGroup) error {
	if len(groups) == 0 {
		return nil
	}
	if err := s.repo.SaveGroups(ctx, groups); err != nil {
		return fmt.Errorf("save groups: %w", err)
	}
	return nil
}

// restrict intersecta con los tipos configurados, si hay.
func (s *Service) restrict(types []MeasurementType) []MeasurementType {
	if s.types == nil {
		return types
	}
	allowed := make(map[MeasurementType]struct{}, len(s.types))
	for _, t := range s.types {
		allowed[t] = struct{}{}
	}
	out := make([]MeasurementType, 0, len(types))
	for _, t := range types {
		if _, ok := allowed[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

func filterGroups(groups []MeasurementGroup, types []MeasurementType) []MeasurementGroup {
	allowed := make(map[MeasurementType]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}
	out := make([]MeasurementGroup, 0, len(groups))
	for _, g := range groups {
		kept := make([]Measurement, 0, len(g.Measurements))
		for _, m := range g.Measurements {
			if _, ok := allowed[m.Type]; ok {
				kept = append(kept, m)
			}
		}
		if len(kept) == 0 {
			continue
		}
		g.Measurements = kept
		out = append(out, g)
	}
	return out
}
