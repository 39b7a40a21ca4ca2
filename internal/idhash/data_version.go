package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"oilfield-finance-lab/internal/domain"
)

// ComputeDataVersion hashes the engine inputs into a short version string.
// Two runs over identical inputs share a version.
// Returns the first 12 hex characters of SHA256 over a canonical encoding.
func ComputeDataVersion(
	fields []domain.Field,
	prices []domain.PricePoint,
	costs []domain.GeneralCostPoint,
) string {
	var b strings.Builder

	sortedFields := make([]domain.Field, len(fields))
	copy(sortedFields, fields)
	sort.Slice(sortedFields, func(i, j int) bool { return sortedFields[i].ID < sortedFields[j].ID })
	for _, f := range sortedFields {
		fmt.Fprintf(&b, "f|%d|%s|%s|%s|%g|%s\n",
			f.ID, f.Name, f.Region, f.OilType, f.Capacity, domain.FormatDate(f.StartDate))
	}

	sortedPrices := make([]domain.PricePoint, len(prices))
	copy(sortedPrices, prices)
	sort.Slice(sortedPrices, func(i, j int) bool { return sortedPrices[i].Date.Before(sortedPrices[j].Date) })
	for _, p := range sortedPrices {
		fmt.Fprintf(&b, "p|%s|%g|%g\n", domain.FormatDate(p.Date), p.USDPrice, p.FXRate)
	}

	sortedCosts := make([]domain.GeneralCostPoint, len(costs))
	copy(sortedCosts, costs)
	sort.Slice(sortedCosts, func(i, j int) bool { return sortedCosts[i].Date.Before(sortedCosts[j].Date) })
	for _, c := range sortedCosts {
		fmt.Fprintf(&b, "c|%s|%g|%g|%g\n",
			domain.FormatDate(c.Date), c.AdminCost, c.MaintenanceCost, c.LogisticsCost)
	}

	hash := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(hash[:])[:12]
}
