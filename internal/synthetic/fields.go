package synthetic

import (
	"fmt"
	"time"

	"oilfield-finance-lab/internal/domain"
)

// Roster parameters.
const (
	minCapacity  = 20000
	maxCapacity  = 100000 // exclusive
	minStartYear = 2004
	maxStartYear = 2016 // exclusive
)

var (
	nameWords = []string{
		"Aurora", "Baleia", "Coral", "Delta", "Estrela", "Farol", "Garoupa", "Horizonte",
		"Ilha", "Jubarte", "Lagosta", "Marlim", "Netuno", "Ostra", "Pampo", "Roncador",
	}
	nameColors = []string{
		"Azul", "Branco", "Cinza", "Dourado", "Negro", "Prata", "Rubro", "Verde",
	}

	// oilTypeWeights matches domain.OilTypes order.
	oilTypeWeights = []float64{0.4, 0.4, 0.2}
)

// Fields generates n fields with ids 1..n.
func (g *Generator) Fields(n int) []domain.Field {
	r := g.rng(streamFields)
	out := make([]domain.Field, 0, n)
	for i := 1; i <= n; i++ {
		name := fmt.Sprintf("Field %s %s", nameWords[r.IntN(len(nameWords))], nameColors[r.IntN(len(nameColors))])
		region := domain.Regions[r.IntN(len(domain.Regions))]
		oilType := domain.OilTypes[weightedIndex(r.Float64(), oilTypeWeights)]
		capacity := float64(minCapacity + r.IntN(maxCapacity-minCapacity))
		year := minStartYear + r.IntN(maxStartYear-minStartYear)
		month := time.Month(1 + r.IntN(12))

		out = append(out, domain.Field{
			ID:        int64(i),
			Name:      name,
			Region:    region,
			OilType:   oilType,
			Capacity:  capacity,
			StartDate: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
		})
	}
	return out
}

// weightedIndex maps u in [0,1) to an index by cumulative weight.
func weightedIndex(u float64, weights []float64) int {
	acc := 0.0
	for i, w := range weights {
		acc += w
		if u < acc {
			return i
		}
	}
	return len(weights) - 1
}
