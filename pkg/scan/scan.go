// Package scan answers presence queries against proteins and proteomes:
// whether a peptide occurs contiguously, as a cis-spliced fragment pair within
// one protein, or as a trans-spliced pair across proteins.
package scan

import "strings"

// Contains reports whether a peptide occurs contiguously in a protein.
func Contains(protein, peptide string) bool {
	return strings.Contains(protein, peptide)
}

// Pair is one candidate split of a peptide into two splice reactants.
type Pair struct {
	Frag1 string
	Frag2 string
}

// GeneratePairs returns all len(peptide)-1 contiguous splits of a peptide,
// ordered by increasing prefix length. This ordering is load-bearing: cis
// detection reports the first qualifying split, so reordering would change
// which fragments are scrubbed.
func GeneratePairs(peptide string) []Pair {
	if len(peptide) < 2 {
		return nil
	}
	pairs := make([]Pair, 0, len(peptide)-1)
	for i := 1; i < len(peptide); i++ {
		pairs = append(pairs, Pair{Frag1: peptide[:i], Frag2: peptide[i:]})
	}
	return pairs
}

// allIndices returns the start positions of every occurrence of a pattern,
// including overlapping ones.
func allIndices(protein, pattern string) []int {
	var indices []int
	offset := 0
	for {
		idx := strings.Index(protein[offset:], pattern)
		if idx < 0 {
			return indices
		}
		indices = append(indices, offset+idx)
		offset += idx + 1
	}
}

// withinBound reports whether two fragment occurrences form a valid cis
// pairing: the earlier fragment must end before the later one starts, and the
// separation between their start positions must not exceed maxIntervening plus
// the length of the earlier fragment. The asymmetric bound reflects that the
// intervening region is measured from the end of the first fragment to the
// start of the second.
func withinBound(f1Start, f1Len, f2Start, f2Len, maxIntervening int) bool {
	if f1Start <= f2Start {
		return f1Start+f1Len < f2Start && f2Start-f1Start <= maxIntervening+f1Len
	}
	return f2Start+f2Len < f1Start && f1Start-f2Start <= maxIntervening+f2Len
}

// FindCisReactants checks whether any split of a peptide is present in a
// protein as a valid cis pairing. Splits are tried in the order given and the
// first qualifying split wins. On a match it returns the fragment strings that
// should be scrubbed to destroy the pairing; single-residue fragments are
// omitted since they are not distinguishing. Returns nil when no split
// qualifies.
func FindCisReactants(protein string, pairs []Pair, maxIntervening int) []string {
	for _, pair := range pairs {
		frag1Inds := allIndices(protein, pair.Frag1)
		if len(frag1Inds) == 0 {
			continue
		}
		frag2Inds := allIndices(protein, pair.Frag2)
		if len(frag2Inds) == 0 {
			continue
		}
		for _, f1 := range frag1Inds {
			for _, f2 := range frag2Inds {
				if !withinBound(f1, len(pair.Frag1), f2, len(pair.Frag2), maxIntervening) {
					continue
				}
				// Non-nil even when both fragments are single residues, so
				// callers can tell "matched, nothing to scrub" from "no match".
				scrubs := []string{}
				if len(pair.Frag1) > 1 {
					scrubs = append(scrubs, pair.Frag1)
				}
				if len(pair.Frag2) > 1 {
					scrubs = append(scrubs, pair.Frag2)
				}
				return scrubs
			}
		}
	}
	return nil
}

// CisPresent reports whether one specific fragment split is present in a
// protein as a valid cis pairing. Used during validation, where the split is
// fixed by the embedding record.
func CisPresent(protein, frag1, frag2 string, maxIntervening int) bool {
	frag1Inds := allIndices(protein, frag1)
	if len(frag1Inds) == 0 {
		return false
	}
	frag2Inds := allIndices(protein, frag2)
	if len(frag2Inds) == 0 {
		return false
	}
	for _, f1 := range frag1Inds {
		for _, f2 := range frag2Inds {
			if withinBound(f1, len(frag1), f2, len(frag2), maxIntervening) {
				return true
			}
		}
	}
	return false
}

// TransPresent reports whether any split of a peptide has one fragment in the
// given protein and the other fragment anywhere in the proteome.
func TransPresent(protein string, pairs []Pair, proteome []string) bool {
	for _, pair := range pairs {
		inProtein1 := strings.Contains(protein, pair.Frag1)
		inProtein2 := strings.Contains(protein, pair.Frag2)
		if !inProtein1 && !inProtein2 {
			continue
		}
		for _, other := range proteome {
			if inProtein1 && strings.Contains(other, pair.Frag2) {
				return true
			}
			if inProtein2 && strings.Contains(other, pair.Frag1) {
				return true
			}
		}
	}
	return false
}
