package tle

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// pivotYear is the TLE two-digit-year pivot: years >= 57 belong to
// 1957-1999, years < 57 belong to 2000-2056 (spec.md §4.4, GLOSSARY).
const pivotYear = 57

// normalizeYear expands a two-digit TLE year into its four-digit form.
func normalizeYear(yy int) int {
	if yy >= pivotYear {
		return 1900 + yy
	}
	return 2000 + yy
}

// normalizeAssumedDecimalExponent decodes the TLE mantissa/exponent
// mnemonic scientific notation "±NNNNN±E", e.g. " 12345-3" = +0.12345e-3
// (spec.md §4.4). It is the single place this decoding happens;
// normalize this exponent notation here and nowhere else in the
// package, following the gnssgo reference decoder's structure
// (sign, mantissa digits, trailing sign+exponent digit).
func normalizeAssumedDecimalExponent(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	if s == "00000-0" || s == "00000+0" || s == "00000 0" {
		return 0, nil
	}

	sign := 1.0
	switch s[0] {
	case '-':
		sign = -1.0
		s = s[1:]
	case '+', ' ':
		s = s[1:]
	}

	if len(s) < 2 {
		return 0, fmt.Errorf("tle: exponent field too short: %q", raw)
	}

	// The final two characters are the exponent sign and digit(s);
	// TLE only ever uses a single exponent digit.
	expSignIdx := len(s) - 2
	mantissaStr := s[:expSignIdx]
	expSign := s[expSignIdx]
	expDigits := s[expSignIdx+1:]

	if mantissaStr == "" {
		return 0, fmt.Errorf("tle: exponent field has no mantissa: %q", raw)
	}

	mantissa, err := strconv.ParseFloat("0."+mantissaStr, 64)
	if err != nil {
		return 0, fmt.Errorf("tle: invalid mantissa in %q: %w", raw, err)
	}

	expVal, err := strconv.Atoi(expDigits)
	if err != nil {
		return 0, fmt.Errorf("tle: invalid exponent in %q: %w", raw, err)
	}
	if expSign == '-' {
		expVal = -expVal
	} else if expSign != '+' {
		return 0, fmt.Errorf("tle: invalid exponent sign in %q", raw)
	}

	return sign * mantissa * math.Pow(10, float64(expVal)), nil
}

// normalizeEccentricity decodes the 7-digit assumed-decimal
// eccentricity field: "0006703" -> 0.0006703.
func normalizeEccentricity(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("tle: empty eccentricity field")
	}
	v, err := strconv.ParseFloat("0."+s, 64)
	if err != nil {
		return 0, fmt.Errorf("tle: invalid eccentricity %q: %w", raw, err)
	}
	return v, nil
}

// designatorPiecePattern validates the international-designator piece
// letters (spec.md §4.3.2).
var designatorPiecePattern = regexp.MustCompile(`^[A-Z]{1,3}$`)

// epochFromYearAndDay computes the UTC epoch instant from a resolved
// four-digit year and a 1-based, possibly-fractional day of year
// (spec.md §4.4): UTC midnight Jan 1 of that year plus (day-1) days.
func epochFromYearAndDay(fullYear int, dayOfYear float64) time.Time {
	base := time.Date(fullYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	return base.Add(time.Duration((dayOfYear - 1) * float64(24*time.Hour)))
}

// julianDate converts a UTC instant to its Julian Date.
func julianDate(t time.Time) float64 {
	t = t.UTC()
	const unixEpochJD = 2440587.5 // JD at 1970-01-01T00:00:00Z
	return unixEpochJD + float64(t.Unix())/86400.0 + float64(t.Nanosecond())/86400e9
}

// modifiedJulianDate converts a Julian Date to its Modified Julian Date.
func modifiedJulianDate(jd float64) float64 {
	return jd - 2400000.5
}

// InternationalDesignator is the decoded COSPAR launch designator.
type InternationalDesignator struct {
	Year         *uint8
	LaunchNumber *uint16
	Piece        string
}

// Classification is the decoded line-1 classification marker.
type Classification int

const (
	ClassificationUnclassified Classification = iota
	ClassificationClassified
	ClassificationSecret
)

func (c Classification) String() string {
	switch c {
	case ClassificationClassified:
		return "Classified"
	case ClassificationSecret:
		return "Secret"
	default:
		return "Unclassified"
	}
}

func parseClassification(raw string) (Classification, bool) {
	switch raw {
	case "U":
		return ClassificationUnclassified, true
	case "C":
		return ClassificationClassified, true
	case "S":
		return ClassificationSecret, true
	default:
		return ClassificationUnclassified, false
	}
}

// NumericView is the typed numeric projection of a ParsedRecord
// (spec.md §3). It is produced explicitly by Normalize, kept separate
// from ParsedRecord's string-exact field map so string<->number
// conversion never drifts between the two representations.
type NumericView struct {
	SatelliteNumber uint32

	EpochYear     uint8
	EpochDay      float64
	EpochFullYear uint16
	EpochInstant  time.Time
	JulianDate    float64
	ModifiedJD    float64

	FirstDerivative  float64
	SecondDerivative float64
	BStar            float64

	InclinationDeg    float64
	RightAscensionDeg float64
	Eccentricity      float64
	ArgOfPerigeeDeg   float64
	MeanAnomalyDeg    float64
	MeanMotion        float64

	RevolutionNumber *uint32
	EphemerisType    *uint8
	ElementSetNumber uint16
	Classification   Classification

	InternationalDesignator InternationalDesignator
}

// Normalize decodes a ParsedRecord's string fields into a NumericView
// (C4). It assumes rec was produced by Parse/ParseWithStateMachine
// (i.e. its FieldMap holds schema-shaped strings) and does not
// re-validate ranges; call Validate first if that matters to the
// caller.
func Normalize(rec ParsedRecord) (NumericView, error) {
	f := rec.Fields
	var nv NumericView

	satNum, err := strconv.ParseUint(f.Line1Field(FieldSatelliteNumber), 10, 32)
	if err != nil {
		return nv, fmt.Errorf("tle: normalize satellite_number: %w", err)
	}
	nv.SatelliteNumber = uint32(satNum)

	cls, ok := parseClassification(f.Line1Field(FieldClassification))
	if !ok {
		return nv, fmt.Errorf("tle: normalize classification: invalid value %q", f.Line1Field(FieldClassification))
	}
	nv.Classification = cls

	epochYear, err := strconv.Atoi(f.Line1Field(FieldEpochYear))
	if err != nil {
		return nv, fmt.Errorf("tle: normalize epoch_year: %w", err)
	}
	nv.EpochYear = uint8(epochYear)
	nv.EpochFullYear = uint16(normalizeYear(epochYear))

	epochDay, err := strconv.ParseFloat(f.Line1Field(FieldEpochDay), 64)
	if err != nil {
		return nv, fmt.Errorf("tle: normalize epoch_day: %w", err)
	}
	nv.EpochDay = epochDay
	nv.EpochInstant = epochFromYearAndDay(int(nv.EpochFullYear), epochDay)
	nv.JulianDate = julianDate(nv.EpochInstant)
	nv.ModifiedJD = modifiedJulianDate(nv.JulianDate)

	firstDeriv, err := strconv.ParseFloat(f.Line1Field(FieldFirstDerivative), 64)
	if err != nil {
		return nv, fmt.Errorf("tle: normalize first_derivative: %w", err)
	}
	nv.FirstDerivative = firstDeriv

	secondDeriv, err := normalizeAssumedDecimalExponent(f.Line1Field(FieldSecondDerivative))
	if err != nil {
		return nv, fmt.Errorf("tle: normalize second_derivative: %w", err)
	}
	nv.SecondDerivative = secondDeriv

	bstar, err := normalizeAssumedDecimalExponent(f.Line1Field(FieldBStar))
	if err != nil {
		return nv, fmt.Errorf("tle: normalize b_star: %w", err)
	}
	nv.BStar = bstar

	if eph := strings.TrimSpace(f.Line1Field(FieldEphemerisType)); eph != "" {
		v, err := strconv.ParseUint(eph, 10, 8)
		if err != nil {
			return nv, fmt.Errorf("tle: normalize ephemeris_type: %w", err)
		}
		v8 := uint8(v)
		nv.EphemerisType = &v8
	}

	elemSet, err := strconv.ParseUint(strings.TrimSpace(f.Line1Field(FieldElementSetNumber)), 10, 16)
	if err != nil {
		return nv, fmt.Errorf("tle: normalize element_set_number: %w", err)
	}
	nv.ElementSetNumber = uint16(elemSet)

	nv.InternationalDesignator, err = normalizeDesignator(f)
	if err != nil {
		return nv, fmt.Errorf("tle: normalize international designator: %w", err)
	}

	incl, err := strconv.ParseFloat(f.Line2Field(FieldInclination), 64)
	if err != nil {
		return nv, fmt.Errorf("tle: normalize inclination: %w", err)
	}
	nv.InclinationDeg = incl

	raan, err := strconv.ParseFloat(f.Line2Field(FieldRightAscension), 64)
	if err != nil {
		return nv, fmt.Errorf("tle: normalize right_ascension: %w", err)
	}
	nv.RightAscensionDeg = raan

	ecc, err := normalizeEccentricity(f.Line2Field(FieldEccentricity))
	if err != nil {
		return nv, fmt.Errorf("tle: normalize eccentricity: %w", err)
	}
	nv.Eccentricity = ecc

	argPerigee, err := strconv.ParseFloat(f.Line2Field(FieldArgOfPerigee), 64)
	if err != nil {
		return nv, fmt.Errorf("tle: normalize argument_of_perigee: %w", err)
	}
	nv.ArgOfPerigeeDeg = argPerigee

	meanAnomaly, err := strconv.ParseFloat(f.Line2Field(FieldMeanAnomaly), 64)
	if err != nil {
		return nv, fmt.Errorf("tle: normalize mean_anomaly: %w", err)
	}
	nv.MeanAnomalyDeg = meanAnomaly

	meanMotion, err := strconv.ParseFloat(f.Line2Field(FieldMeanMotion), 64)
	if err != nil {
		return nv, fmt.Errorf("tle: normalize mean_motion: %w", err)
	}
	nv.MeanMotion = meanMotion

	if rev := strings.TrimSpace(f.Line2Field(FieldRevolutionNumber)); rev != "" {
		v, err := strconv.ParseUint(rev, 10, 32)
		if err != nil {
			return nv, fmt.Errorf("tle: normalize revolution_number: %w", err)
		}
		v32 := uint32(v)
		nv.RevolutionNumber = &v32
	}

	return nv, nil
}

func normalizeDesignator(f FieldMap) (InternationalDesignator, error) {
	var d InternationalDesignator
	if y := strings.TrimSpace(f.Line1Field(FieldIntlDesigYear)); y != "" {
		v, err := strconv.ParseUint(y, 10, 8)
		if err != nil {
			return d, fmt.Errorf("intl_desig_year: %w", err)
		}
		v8 := uint8(v)
		d.Year = &v8
	}
	if l := strings.TrimSpace(f.Line1Field(FieldIntlDesigLaunch)); l != "" {
		v, err := strconv.ParseUint(l, 10, 16)
		if err != nil {
			return d, fmt.Errorf("intl_desig_launch_number: %w", err)
		}
		v16 := uint16(v)
		d.LaunchNumber = &v16
	}
	d.Piece = strings.TrimSpace(f.Line1Field(FieldIntlDesigPiece))
	return d, nil
}
