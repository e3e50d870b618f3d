// Package core provides the shared data model for pepbench: the amino acid
// alphabet, stratum definitions, ground truth records and residue chemistry.
package core

import (
	"math/rand"
	"strings"
)

// AminoAcids is the 20-letter residue alphabet used for all random draws.
// B/J/O/U/X/Z are excluded; I is excluded because sequences are stored
// I/L-normalized.
const AminoAcids = "ACDEFGHKLMNPQRSTVYW"

// Proton mass for charge calculations
const ProtonMass = 1.007276466622

// MassH2O is the mass of water, added once per peptide.
const MassH2O = 18.0105646863

// ResidueWeights maps amino acid one-letter codes to monoisotopic residue masses.
var ResidueWeights = map[byte]float64{
	'A': 71.037114,
	'R': 156.101111,
	'N': 114.042927,
	'D': 115.026943,
	'C': 103.009185,
	'E': 129.042593,
	'Q': 128.058578,
	'G': 57.021464,
	'H': 137.058912,
	'I': 113.084064,
	'L': 113.084064,
	'K': 128.094963,
	'M': 131.040485,
	'F': 147.068414,
	'P': 97.052764,
	'S': 87.032028,
	'T': 101.047679,
	'W': 186.079313,
	'Y': 163.06332,
	'V': 99.068414,
}

// NormalizeIL replaces all isoleucine residues with leucine. The two are
// isobaric and cannot be distinguished by the instrument, so peptides and
// proteins are compared and stored under this normalization.
func NormalizeIL(sequence string) string {
	return strings.ReplaceAll(sequence, "I", "L")
}

// RandomResidues draws n residues uniformly from the amino acid alphabet.
func RandomResidues(rng *rand.Rand, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte(AminoAcids[rng.Intn(len(AminoAcids))])
	}
	return sb.String()
}

// NeutralMass computes the monoisotopic neutral mass of a peptide sequence.
// Unrecognised residues contribute zero mass.
func NeutralMass(sequence string) float64 {
	mass := MassH2O
	for i := 0; i < len(sequence); i++ {
		mass += ResidueWeights[sequence[i]]
	}
	return mass
}

// PrecursorMZ computes the m/z of a peptide at a given charge state:
// (mass + charge * proton) / charge.
func PrecursorMZ(sequence string, charge int) float64 {
	if charge <= 0 {
		return 0
	}
	return (NeutralMass(sequence) + float64(charge)*ProtonMass) / float64(charge)
}

// FragmentMasses computes the cumulative residue masses of the n-1 prefixes of
// a peptide. With reverse set, suffix masses are returned instead (used for
// y ions rather than b ions).
func FragmentMasses(sequence string, reverse bool) []float64 {
	if len(sequence) < 2 {
		return nil
	}
	if reverse {
		b := []byte(sequence)
		for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
			b[i], b[j] = b[j], b[i]
		}
		sequence = string(b)
	}

	masses := make([]float64, len(sequence)-1)
	tracking := 0.0
	for i := 0; i < len(sequence)-1; i++ {
		tracking += ResidueWeights[sequence[i]]
		masses[i] = tracking
	}
	return masses
}
