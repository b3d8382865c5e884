package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductMatches(t *testing.T) {
	sku := "TWL-100"
	p := Product{
		Name: "Egyptian Cotton Bath Towel",
		SKU:  &sku,
		Tags: []string{"bathroom", "linen"},
	}

	assert.True(t, p.Matches(""))
	assert.True(t, p.Matches("cotton"))
	assert.True(t, p.Matches("BATH"))
	assert.True(t, p.Matches("twl-100"))
	assert.True(t, p.Matches("linen"))
	assert.False(t, p.Matches("duvet"))
}

func TestProductMatchesWithoutSKUOrTags(t *testing.T) {
	p := Product{Name: "King Size Duvet"}

	assert.True(t, p.Matches("duvet"))
	assert.False(t, p.Matches("linen"))
}

func TestProductWithoutCost(t *testing.T) {
	cost := 7.00
	p := Product{Name: "Bath Towel", SalePrice: 12.50, CostPrice: &cost}

	stripped := p.WithoutCost()
	assert.Nil(t, stripped.CostPrice)
	assert.Equal(t, 12.50, stripped.SalePrice)

	// The original is untouched
	assert.NotNil(t, p.CostPrice)
}
