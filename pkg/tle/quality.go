package tle

import "time"

// Grade is a letter grade derived from a Quality score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Quality is the weighted composite quality score described in
// spec.md §4.4 ("quality score, optional"): a single number callers
// can use to triage a batch of records without re-running Validate
// themselves. It is computed from a ValidationReport rather than
// forced into the Parse/Validate hot path.
type Quality struct {
	Score float64
	Grade Grade

	ChecksumValid        bool
	FormatValid          bool
	RangeCompliant       bool
	TypicalRangeCompliant bool
	EpochRecent          bool
	AnomalyCount         int
	DesignatorValid      bool
	Consistent           bool
}

const (
	weightChecksum       = 0.20
	weightFormat         = 0.15
	weightRange          = 0.15
	weightTypicalRange   = 0.10
	weightEpochRecency   = 0.15
	weightAnomalyCount   = 0.10
	weightDesignator     = 0.05
	weightConsistency    = 0.10
)

// ScoreQuality computes a Quality from a completed ValidationReport
// and, when available, the decoded NumericView (for epoch recency and
// typical-range checks that need numeric values rather than raw
// strings). nv may be the zero value if normalization was not run;
// in that case epoch-recency and typical-range contribute zero.
func ScoreQuality(report ValidationReport, nv NumericView, opts Options) Quality {
	q := Quality{}

	q.ChecksumValid = !issuesContain(report.Errors, CodeChecksumMismatch) && !issuesContain(report.Warnings, CodeChecksumMismatch)
	q.FormatValid = !issuesContain(report.Errors, CodeInvalidLineLength) &&
		!issuesContain(report.Errors, CodeInvalidLineNumber) &&
		!issuesContain(report.Errors, CodeInvalidNumberFormat)
	q.RangeCompliant = !issuesContain(report.Errors, CodeValueOutOfRange) && !issuesContain(report.Warnings, CodeValueOutOfRange)
	q.Consistent = !issuesContain(report.Errors, CodeSatelliteNumberMismatch) && !issuesContain(report.Warnings, CodeSatelliteNumberMismatch)
	q.DesignatorValid = nv.InternationalDesignator.Piece == "" || designatorPiecePattern.MatchString(nv.InternationalDesignator.Piece)

	q.AnomalyCount = len(report.Warnings)

	q.TypicalRangeCompliant = !nv.EpochInstant.IsZero() && nv.MeanMotion > 0 && nv.MeanMotion <= 20 && nv.Eccentricity < 0.25

	if !nv.EpochInstant.IsZero() {
		ref := opts.referenceTime()
		q.EpochRecent = ref.Sub(nv.EpochInstant) <= 30*24*time.Hour
	}

	score := 0.0
	score += weight(q.ChecksumValid) * weightChecksum * 100
	score += weight(q.FormatValid) * weightFormat * 100
	score += weight(q.RangeCompliant) * weightRange * 100
	score += weight(q.TypicalRangeCompliant) * weightTypicalRange * 100
	score += weight(q.EpochRecent) * weightEpochRecency * 100
	score += anomalyScore(q.AnomalyCount) * weightAnomalyCount * 100
	score += weight(q.DesignatorValid) * weightDesignator * 100
	score += weight(q.Consistent) * weightConsistency * 100

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	q.Score = score
	q.Grade = gradeFor(score)
	return q
}

func weight(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}

// anomalyScore decays linearly from 1.0 (no warnings) to 0.0 at 5 or
// more warnings, rather than an all-or-nothing penalty.
func anomalyScore(count int) float64 {
	if count <= 0 {
		return 1
	}
	if count >= 5 {
		return 0
	}
	return 1 - float64(count)/5
}

func gradeFor(score float64) Grade {
	switch {
	case score >= 90:
		return GradeA
	case score >= 80:
		return GradeB
	case score >= 70:
		return GradeC
	case score >= 60:
		return GradeD
	default:
		return GradeF
	}
}

func issuesContain(issues []Issue, code ErrorCode) bool {
	for _, iss := range issues {
		if iss.Code == code {
			return true
		}
	}
	return false
}
