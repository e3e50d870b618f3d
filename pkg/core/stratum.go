package core

import (
	"fmt"
	"strings"
)

// Stratum is the benchmarking category assigned to a ground truth peptide.
// It determines how the peptide is embedded in the proteome and how its
// presence is validated.
type Stratum int

const (
	// Canonical peptides appear as one contiguous substring of a single protein.
	Canonical Stratum = iota
	// CisSpliced peptides never appear contiguously; their two fragments both
	// occur in one protein within a bounded intervening distance.
	CisSpliced
	// TransSpliced peptides have their two fragments embedded in two different
	// proteins, with no contiguous or single-protein-paired occurrence anywhere.
	TransSpliced
)

// String returns the stratum key used in tabular exports.
func (s Stratum) String() string {
	switch s {
	case Canonical:
		return "canonical"
	case CisSpliced:
		return "cisspliced"
	case TransSpliced:
		return "transspliced"
	}
	return fmt.Sprintf("stratum(%d)", int(s))
}

// ParseStratum parses a stratum key from a tabular export.
func ParseStratum(key string) (Stratum, error) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "canonical":
		return Canonical, nil
	case "cisspliced":
		return CisSpliced, nil
	case "transspliced":
		return TransSpliced, nil
	}
	return 0, fmt.Errorf("unrecognised stratum '%s'", key)
}

// Enzyme selects the digestion enzyme used when embedding canonical peptides.
type Enzyme int

const (
	// NoEnzyme embeds canonical peptides without a cleavage prefix.
	NoEnzyme Enzyme = iota
	// Trypsin prefixes canonical peptides with 'K' so that tryptic digestion
	// releases the embedded peptide.
	Trypsin
)

// ParseEnzyme validates an enzyme value from configuration. Allowed values are
// "", "none" and "trypsin"; anything else is a fatal configuration error.
func ParseEnzyme(value string) (Enzyme, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "none":
		return NoEnzyme, nil
	case "trypsin":
		return Trypsin, nil
	}
	return 0, fmt.Errorf("unrecognised enzyme '%s', allowed values are none, trypsin", value)
}

// Prefix returns the cleavage residue prepended to canonical peptides, or ""
// when no enzyme is configured.
func (e Enzyme) Prefix() string {
	if e == Trypsin {
		return "K"
	}
	return ""
}

// Record tracks where and how one ground truth peptide was embedded in the
// proteome. Frag1/Frag2 hold the splice reactants for spliced strata and are
// empty for canonical peptides. ProteinIdxB is the second target protein for
// transspliced peptides and -1 otherwise.
type Record struct {
	Peptide     string
	Stratum     Stratum
	ProteinIdx  int
	ProteinIdxB int
	Position    int
	Frag1       string
	Frag2       string
}

// ValidationError represents an error found during record validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// Validate checks that a record is internally consistent before it is
// persisted or embedded.
func (r *Record) Validate() error {
	var errs []string

	if r.Peptide == "" {
		errs = append(errs, "peptide is required")
	}
	switch r.Stratum {
	case Canonical:
		if r.Frag1 != "" || r.Frag2 != "" {
			errs = append(errs, "canonical records must not carry fragments")
		}
		if r.ProteinIdx < 0 {
			errs = append(errs, "canonical records require a target protein")
		}
	case CisSpliced:
		if r.Frag1+r.Frag2 != r.Peptide {
			errs = append(errs, "fragments must reassemble to the peptide")
		}
		if r.ProteinIdx < 0 {
			errs = append(errs, "cisspliced records require a target protein")
		}
	case TransSpliced:
		if r.Frag1+r.Frag2 != r.Peptide {
			errs = append(errs, "fragments must reassemble to the peptide")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown stratum %d", int(r.Stratum)))
	}

	if len(errs) > 0 {
		return &ValidationError{
			Field:   "Record",
			Message: strings.Join(errs, "; "),
		}
	}
	return nil
}
