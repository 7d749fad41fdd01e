package tle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeYear_Pivot(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		yy   int
		want int
	}{
		{0, 2000},
		{56, 2056},
		{57, 1957},
		{99, 1999},
	}
	for _, tt := range tests {
		assert.Equal(tt.want, normalizeYear(tt.yy))
	}
}

func TestNormalizeYear_FullRangeInvariant(t *testing.T) {
	assert := assert.New(t)

	for yy := 0; yy <= 99; yy++ {
		got := normalizeYear(yy)
		if yy >= 57 {
			assert.Equal(1900+yy, got)
		} else {
			assert.Equal(2000+yy, got)
		}
	}
}

func TestNormalizeAssumedDecimalExponent(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"zero dash", "00000-0", 0},
		{"zero plus", "00000+0", 0},
		{"zero space", "00000 0", 0},
		{"bstar", "-11606-4", -0.000011606},
		{"second derivative zero", " 00000-0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeAssumedDecimalExponent(tt.raw)
			assert.NoError(err)
			assert.InDelta(tt.want, got, 1e-12)
		})
	}
}

func TestNormalizeEccentricity(t *testing.T) {
	assert := assert.New(t)

	got, err := normalizeEccentricity("0006703")
	assert.NoError(err)
	assert.InDelta(0.0006703, got, 1e-9)
}

func TestNormalize_ISS(t *testing.T) {
	assert := assert.New(t)

	rec, err := Parse(issTLE(), DefaultOptions())
	assert.NoError(err)

	nv, err := Normalize(rec)
	assert.NoError(err)

	assert.Equal(uint32(25544), nv.SatelliteNumber)
	assert.Equal(ClassificationUnclassified, nv.Classification)
	assert.Equal(uint16(2008), nv.EpochFullYear)
	assert.InDelta(0.0006703, nv.Eccentricity, 1e-9)
	assert.InDelta(51.6416, nv.InclinationDeg, 1e-9)
	assert.NotNil(nv.InternationalDesignator.Year)
	assert.Equal(uint8(98), *nv.InternationalDesignator.Year)
	assert.Equal("A", nv.InternationalDesignator.Piece)
}

func TestJulianDate_KnownEpoch(t *testing.T) {
	assert := assert.New(t)

	instant := epochFromYearAndDay(2000, 1.5)
	jd := julianDate(instant)
	mjd := modifiedJulianDate(jd)
	assert.InDelta(2451545.0, jd, 1e-9)
	assert.InDelta(jd-2400000.5, mjd, 1e-9)
}
