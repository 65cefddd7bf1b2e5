package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMin_SingleValue(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(5, Min(5))
}

func TestMin_PicksSmallestAcrossRest(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(1, Min(3, 1, 2))
	assert.Equal(-4, Min(0, -4, 7, 2))
}

func TestMin_ThreeArgumentForm(t *testing.T) {
	assert := assert.New(t)
	// imop's clip helpers call Min(r, g, b) with three channel values.
	assert.EqualValues(10, Min(uint8(200), uint8(10), uint8(90)))
}

func TestMax_SingleValue(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(5, Max(5))
}

func TestMax_PicksLargestAcrossRest(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(7, Max(3, 1, 7, 2))
	assert.Equal(-1, Max(-4, -1, -9))
}

func TestMax_ThreeArgumentForm(t *testing.T) {
	assert := assert.New(t)
	assert.EqualValues(200, Max(uint8(200), uint8(10), uint8(90)))
}

func TestAbs_NegativeAndPositive(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(4, Abs(-4))
	assert.Equal(4, Abs(4))
	assert.Equal(0, Abs(0))
}

func TestAbs_Float(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(3.5, Abs(-3.5))
}

func TestContains_FindsPresentValue(t *testing.T) {
	assert := assert.New(t)
	assert.True(Contains([]string{"normal", "multiply", "screen"}, "multiply"))
}

func TestContains_MissingValueIsFalse(t *testing.T) {
	assert := assert.New(t)
	assert.False(Contains([]string{"normal", "multiply"}, "darken"))
}

func TestContains_EmptySliceIsFalse(t *testing.T) {
	assert := assert.New(t)
	assert.False(Contains([]int{}, 1))
}
