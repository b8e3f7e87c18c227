package goals

import (
	"context"

	"withings-health-sync/internal/domain/decode"
)

// APIValue es un número codificado mantisa/exponente.
type APIValue struct {
	Value int64 `json:"value"`
	Unit  int   `json:"unit"`
}

// APIGoals es el payload crudo de v2/user?action=getgoals.
type APIGoals struct {
	Steps  *int      `json:"steps"`
	Sleep  *int      `json:"sleep"`
	Weight *APIValue `json:"weight"`
}

// Goals: cada objetivo es nil si el usuario no lo definió.
type Goals struct {
	Steps        *int
	SleepSeconds *int
	Weight       *float64
}

func FromAPI(raw APIGoals) Goals {
	g := Goals{}
	if raw.Steps != nil {
		v := *raw.Steps
		g.Steps = &v
	}
	if raw.Sleep != nil {
		v := *raw.Sleep
		g.SleepSeconds = &v
	}
	if raw.Weight != nil {
		v := decode.Value(raw.Weight.Value, raw.Weight.Unit)
		g.Weight = &v
	}
	return g
}

type Source interface {
	GetGoals(ctx context.Context) (Goals, error)
}
