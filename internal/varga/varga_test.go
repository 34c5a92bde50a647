package varga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDnSign_D1Identity(t *testing.T) {
	for s := 0; s < 12; s++ {
		got, err := BuildDnSign(s, 14.5, 1)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestBuildDnSign_D2Hora(t *testing.T) {
	// Aries (0, odd parity is false since 0 is even) -> first half Cancer, second half Leo.
	got, err := BuildDnSign(0, 5, 2) // k=0
	require.NoError(t, err)
	assert.Equal(t, 3, got) // Cancer

	got, err = BuildDnSign(0, 20, 2) // k=1
	require.NoError(t, err)
	assert.Equal(t, 4, got) // Leo

	// Taurus (1, odd) -> first half Leo, second half Cancer.
	got, err = BuildDnSign(1, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, got)
}

func TestBuildDnSign_D3Drekkana(t *testing.T) {
	got, _ := BuildDnSign(0, 1, 3) // k=0
	assert.Equal(t, 0, got)
	got, _ = BuildDnSign(0, 11, 3) // k=1
	assert.Equal(t, 4, got)
	got, _ = BuildDnSign(0, 21, 3) // k=2
	assert.Equal(t, 8, got)
}

func TestBuildDnSign_D9NavamsaMovableStart(t *testing.T) {
	// Aries (movable): start = sign, k from 0..8.
	got, _ := BuildDnSign(0, 0, 9) // k=0
	assert.Equal(t, 0, got)
	got, _ = BuildDnSign(0, 29.999, 9) // k=8
	assert.Equal(t, 8, got)
}

func TestBuildDnSign_D10FixedMatchesMovable(t *testing.T) {
	// Regression anchor for the corrected D10 fixed-sign convention:
	// odd fixed sign -> offset 0 (same as movable), not the inverted
	// earlier convention.
	movableEven, _ := BuildDnSign(0, 0, 10)     // Aries, movable, index even -> offset 8
	fixedOdd, _ := BuildDnSign(7, 0, 10)        // Scorpio, fixed, index odd -> offset 0
	fixedEven, _ := BuildDnSign(4, 0, 10)       // Leo, fixed, index even -> offset 8
	movableOddSign, _ := BuildDnSign(3, 0, 10)  // Cancer, movable, index odd -> offset 0

	assert.Equal(t, 8, movableEven)
	assert.Equal(t, 7, fixedOdd) // offset 0, k=0 -> same sign
	assert.Equal(t, 0, fixedEven)
	assert.Equal(t, 3, movableOddSign)
}

func TestBuildDnSign_D24DefaultCancer(t *testing.T) {
	// A sign/k pair outside the exception table uses the Cancer default.
	got, _ := BuildDnSign(1, 0, 24) // Taurus, k=0 -> not in exception table
	assert.Equal(t, 3, got)         // Cancer
}

func TestBuildDnSign_D24Exception(t *testing.T) {
	got, _ := BuildDnSign(0, 0, 24) // Aries, k=0 -> exception fires Leo
	assert.Equal(t, 4, got)
}

func TestBuildDnSign_D30Bands(t *testing.T) {
	// Odd sign (Taurus, index 1): bands per trimsamsaOdd.
	got, _ := BuildDnSign(1, 3, 30) // in [0,5) -> Mars -> Aries
	assert.Equal(t, 0, got)
	got, _ = BuildDnSign(1, 7, 30) // [5,10) -> Saturn -> Aquarius
	assert.Equal(t, 10, got)
	got, _ = BuildDnSign(1, 29, 30) // [25,30) -> Venus -> Libra
	assert.Equal(t, 6, got)

	// Even sign (Aries, index 0): reflected table.
	got, _ = BuildDnSign(0, 3, 30)
	assert.Equal(t, 1, got) // Venus -> Taurus
}

func TestBuildDnSign_InvalidInputs(t *testing.T) {
	_, err := BuildDnSign(-1, 10, 9)
	assert.Error(t, err)
	_, err = BuildDnSign(0, 30, 9)
	assert.Error(t, err)
	_, err = BuildDnSign(0, 10, 11) // N=11 not allowed
	assert.Error(t, err)
}

func TestBuildDnSign_AllAllowedNProduceValidSignIndex(t *testing.T) {
	for _, n := range AllowedN {
		for s := 0; s < 12; s++ {
			got, err := BuildDnSign(s, 12.345, n)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 11)
		}
	}
}
