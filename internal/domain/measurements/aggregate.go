package measurements

import (
	"sort"
	"time"
)

// Aggregate devuelve el valor más reciente por tipo.
//
// types == nil no filtra; un slice vacío (no nil) no deja pasar ningún tipo.
// Con MeasuredAt idéntico gana la última medida en orden de iteración.
func Aggregate(groups []MeasurementGroup, types []MeasurementType) map[MeasurementType]float64 {
	var allowed map[MeasurementType]struct{}
	if types != nil {
		allowed = make(map[MeasurementType]struct{}, len(types))
		for _, t := range types {
			allowed[t] = struct{}{}
		}
	}

	type latest struct {
		at    time.Time
		value float64
	}
	winners := make(map[MeasurementType]latest)

	for _, g := range groups {
		for _, m := range g.Measurements {
			if allowed != nil {
				if _, ok := allowed[m.Type]; !ok {
					continue
				}
			}
			if prev, ok := winners[m.Type]; ok && g.MeasuredAt.Before(prev.at) {
				continue
			}
			winners[m.Type] = latest{at: g.MeasuredAt, value: m.Value}
		}
	}

	out := make(map[MeasurementType]float64, len(winners))
	for t, w := range winners {
		out[t] = w.value
	}
	return out
}

func sortTypes(types []MeasurementType) {
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
}
