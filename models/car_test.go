package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMakeListingSlug(t *testing.T) {
	createdAt := time.Unix(1700000000, 0)

	s := MakeListingSlug("Toyota Corolla GLi 2018", createdAt)
	assert.Equal(t, "toyota-corolla-gli-2018-1700000000", s)

	// punctuation and repeated spaces collapse into single hyphens
	s = MakeListingSlug("Honda Civic  1.8 (Oriel)!", createdAt)
	assert.Equal(t, "honda-civic-1-8-oriel-1700000000", s)
}

func TestMakeListingSlugUniquePerTimestamp(t *testing.T) {
	a := MakeListingSlug("Suzuki Alto", time.Unix(1700000000, 0))
	b := MakeListingSlug("Suzuki Alto", time.Unix(1700000001, 0))
	assert.NotEqual(t, a, b)
}

func TestIsValidFuelType(t *testing.T) {
	for _, fuelType := range FuelTypes {
		assert.True(t, IsValidFuelType(fuelType))
	}
	assert.False(t, IsValidFuelType("petrol")) // values are case-sensitive enums
	assert.False(t, IsValidFuelType("Steam"))
	assert.False(t, IsValidFuelType(""))
}

func TestIsValidPartCategory(t *testing.T) {
	assert.True(t, IsValidPartCategory("Engine"))
	assert.True(t, IsValidPartCategory("Wheels & Tyres"))
	assert.False(t, IsValidPartCategory("engine"))
	assert.False(t, IsValidPartCategory("Rocket Boosters"))
}
