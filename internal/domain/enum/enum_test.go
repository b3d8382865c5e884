package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscountTierValid(t *testing.T) {
	for _, tier := range DiscountTiers {
		assert.True(t, tier.Valid(), tier)
	}
	assert.False(t, DiscountTier("20%").Valid())
	assert.False(t, DiscountTier("").Valid())
}

func TestDiscountTierFraction(t *testing.T) {
	assert.Equal(t, 0.0, DiscountNone.Fraction())
	assert.Equal(t, 0.05, DiscountFive.Fraction())
	assert.Equal(t, 0.10, DiscountTen.Fraction())
	assert.Equal(t, 0.15, DiscountFifteen.Fraction())
}

func TestDiscountTierApplied(t *testing.T) {
	assert.Nil(t, DiscountNone.Applied())
	assert.Nil(t, DiscountTier("").Applied())

	applied := DiscountFifteen.Applied()
	require.NotNil(t, applied)
	assert.Equal(t, "15%", *applied)
}

func TestUserRoleCanViewCost(t *testing.T) {
	assert.True(t, RoleAdmin.CanViewCost())
	assert.False(t, RoleEmployee.CanViewCost())
	assert.False(t, UserRole("manager").CanViewCost())
}

func TestUserRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleEmployee.Valid())
	assert.False(t, UserRole("manager").Valid())
}
