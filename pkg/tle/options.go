package tle

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Mode selects how the layered validator classifies layer 5/6/7/8
// violations: as hard errors (Strict) or as warnings (Permissive).
// Layers 1-4 (structure) are always hard errors regardless of Mode
// (spec.md §4.3.3).
type Mode string

const (
	ModeStrict     Mode = "strict"
	ModePermissive Mode = "permissive"
)

// Options controls Parse, Validate and ParseWithStateMachine. The
// zero value is not ready to use; call DefaultOptions to get the
// documented defaults (spec.md §4.7).
type Options struct {
	// Validate gates every content check past structural canonicalization
	// (layers 5-9). With it false, Validate/Parse only confirm the
	// record is column-shaped and never fail on checksum, range, or
	// classification problems.
	Validate bool `validate:"-"`
	// StrictChecksums runs layer 5's checksum check at all. With it
	// false the checksum layer is skipped entirely, independent of Mode.
	StrictChecksums bool `validate:"-"`
	ValidateRanges  bool `validate:"-"`
	IncludeWarnings bool `validate:"-"`
	// IncludeComments keeps comment lines (CanonicalLines.Comments) on
	// the returned report/record; with it false they are discarded.
	IncludeComments bool `validate:"-"`
	Mode            Mode `validate:"omitempty,oneof=strict permissive"`

	// AttemptRecovery, MaxRecoveryAttempts and IncludePartialResults
	// only affect ParseWithStateMachine (C5).
	AttemptRecovery        bool `validate:"-"`
	MaxRecoveryAttempts    uint `validate:"gte=1,lte=1000"`
	IncludePartialResults  bool `validate:"-"`

	// ReferenceTime anchors the STALE_TLE_WARNING age computation
	// (spec.md §4.3 layer 9). The zero value means time.Now() is used
	// at validation time.
	ReferenceTime time.Time `validate:"-"`
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Validate:              true,
		StrictChecksums:       true,
		ValidateRanges:        true,
		IncludeWarnings:       true,
		IncludeComments:       true,
		Mode:                  ModeStrict,
		AttemptRecovery:       true,
		MaxRecoveryAttempts:   10,
		IncludePartialResults: true,
	}
}

// optionsValidator is a single, lazily-created validator.Validate instance;
// it caches struct metadata internally so it should not be recreated
// per call.
var optionsValidator *validator.Validate

func (o Options) normalize() (Options, error) {
	if o.Mode == "" {
		o.Mode = ModeStrict
	}
	if o.MaxRecoveryAttempts == 0 {
		o.MaxRecoveryAttempts = 10
	}
	if optionsValidator == nil {
		optionsValidator = validator.New()
	}
	if err := optionsValidator.Struct(o); err != nil {
		return o, err
	}
	return o, nil
}

func (o Options) referenceTime() time.Time {
	if o.ReferenceTime.IsZero() {
		return time.Now().UTC()
	}
	return o.ReferenceTime
}
