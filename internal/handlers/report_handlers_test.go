package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zenkart/zenkart-golang/internal/models"
)

func TestTotalPriceByCategory(t *testing.T) {
	lines := []categoryLine{
		{Category: "A", UnitPrice: 10, Quantity: 2},
		{Category: "B", UnitPrice: 5, Quantity: 1},
		{Category: "A", UnitPrice: 10, Quantity: 1},
	}

	totals := totalPriceByCategory(lines)

	assert.ElementsMatch(t, []models.CategoryTotal{
		{Category: "A", TotalPrice: 30},
		{Category: "B", TotalPrice: 5},
	}, totals)
}

func TestTotalPriceByCategoryUsesSnapshotPrice(t *testing.T) {
	// Two lines for the same category at different snapshot prices: the
	// stored unit price wins, not any single "current" price.
	lines := []categoryLine{
		{Category: "electronics", UnitPrice: 100, Quantity: 1},
		{Category: "electronics", UnitPrice: 80, Quantity: 2},
	}

	totals := totalPriceByCategory(lines)
	assert.Equal(t, []models.CategoryTotal{
		{Category: "electronics", TotalPrice: 260},
	}, totals)
}

func TestTotalPriceByCategoryEmpty(t *testing.T) {
	totals := totalPriceByCategory(nil)
	assert.Empty(t, totals)
}

func TestTotalPriceByCategoryOmitsZeroCategories(t *testing.T) {
	lines := []categoryLine{{Category: "books", UnitPrice: 12.5, Quantity: 4}}

	totals := totalPriceByCategory(lines)
	assert.Len(t, totals, 1)
	assert.Equal(t, "books", totals[0].Category)
	assert.Equal(t, 50.0, totals[0].TotalPrice)
}
