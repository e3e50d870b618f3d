// Package strata partitions a pool of ground truth peptides into the
// canonical, cisspliced and transspliced strata. Peptides that are too
// similar to live in different strata are grouped first, so that a short
// peptide can never be a trivial substring of a longer peptide assigned to a
// harder stratum.
package strata

import (
	"math/rand"
	"sort"
	"strings"
)

// Strata holds the peptides assigned to each stratum, in assignment order.
type Strata struct {
	Canonical    []string
	CisSpliced   []string
	TransSpliced []string
}

// Has reports whether any stratum is non-empty.
func (s *Strata) Has() bool {
	return len(s.Canonical)+len(s.CisSpliced)+len(s.TransSpliced) > 0
}

// Total returns the number of peptides across all strata.
func (s *Strata) Total() int {
	return len(s.Canonical) + len(s.CisSpliced) + len(s.TransSpliced)
}

// longestCommonSubstring returns the length of the longest common substring
// of two peptides.
func longestCommonSubstring(a, b string) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	best := 0
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > best {
					best = curr[j]
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}
	return best
}

// tooClose reports whether two peptides are so similar that assigning them to
// different strata would make one of them trivially identifiable: either the
// shorter peptide shares all but fewer than cutoff residues with the longer
// one, or some split of the shorter peptide has both fragments inside the
// longer one.
func tooClose(peptide1, peptide2 string, cutoff int) bool {
	size := longestCommonSubstring(peptide1, peptide2)

	if len(peptide1) <= len(peptide2) {
		if len(peptide1)-size < cutoff {
			return true
		}
		for i := 1; i < len(peptide1); i++ {
			if strings.Contains(peptide2, peptide1[:i]) && strings.Contains(peptide2, peptide1[i:]) {
				return true
			}
		}
	}
	if len(peptide2) <= len(peptide1) {
		if len(peptide2)-size < cutoff {
			return true
		}
		for i := 1; i < len(peptide2); i++ {
			if strings.Contains(peptide1, peptide2[:i]) && strings.Contains(peptide1, peptide2[i:]) {
				return true
			}
		}
	}
	return false
}

// GroupPeptides clusters peptides which are too close to be assigned to
// different strata. Groups are merged transitively: if a peptide is close to
// members of two existing groups, the groups collapse into one.
func GroupPeptides(peptides []string, cutoff int) [][]string {
	var groups [][]string

	member := make(map[string]int)
	for _, peptide := range peptides {
		closeSet := []string{peptide}
		for _, other := range peptides {
			if other == peptide {
				continue
			}
			if tooClose(peptide, other, cutoff) {
				closeSet = append(closeSet, other)
			}
		}

		found := map[int]bool{}
		for _, pep := range closeSet {
			if idx, ok := member[pep]; ok {
				found[idx] = true
			}
		}

		switch len(found) {
		case 0:
			groups = append(groups, closeSet)
			for _, pep := range closeSet {
				member[pep] = len(groups) - 1
			}
		case 1:
			var idx int
			for g := range found {
				idx = g
			}
			for _, pep := range closeSet {
				if _, ok := member[pep]; !ok {
					groups[idx] = append(groups[idx], pep)
					member[pep] = idx
				}
			}
		default:
			// Merge all touched groups and the new peptides into the
			// lowest-indexed group.
			lowest := -1
			for g := range found {
				if lowest < 0 || g < lowest {
					lowest = g
				}
			}
			for g := range found {
				if g == lowest {
					continue
				}
				for _, pep := range groups[g] {
					member[pep] = lowest
				}
				groups[lowest] = append(groups[lowest], groups[g]...)
				groups[g] = nil
			}
			for _, pep := range closeSet {
				if _, ok := member[pep]; !ok {
					groups[lowest] = append(groups[lowest], pep)
					member[pep] = lowest
				}
			}
		}
	}

	// Drop groups emptied by merging.
	out := groups[:0]
	for _, grp := range groups {
		if len(grp) > 0 {
			out = append(out, grp)
		}
	}
	return out
}

// multipleMaximalElements reports whether some peptide in the group contains
// two sub-peptides neither of which contains the other. Such a group cannot
// be cleanly ranked and is pushed to an extreme stratum instead.
func multipleMaximalElements(group []string) bool {
	for _, peptide1 := range group {
		subPep := ""
		for _, peptide2 := range group {
			if peptide2 == peptide1 || !strings.Contains(peptide1, peptide2) {
				continue
			}
			switch {
			case subPep == "":
				subPep = peptide2
			case strings.Contains(subPep, peptide2):
				subPep = peptide2
			case strings.Contains(peptide2, subPep):
				// chain of containment, still rankable
			default:
				return true
			}
		}
	}
	return false
}

// quantile computes the linearly interpolated quantile of a sorted slice.
func quantile(sorted []float64, frac float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	h := frac * float64(len(sorted)-1)
	lo := int(h)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// Assign partitions peptides into strata according to the configured target
// fractions. Group order is shuffled with the seeded generator; un-splittable
// groups are forced to the lowest or highest rank by a seeded coin flip; the
// ranked peptides are then cut at the quantiles corresponding to
// canonicalFraction and canonicalFraction+cisFraction. A group straddling a
// quantile boundary is never split: whichever side owns the boundary after
// ranking wins wholesale.
func Assign(rng *rand.Rand, peptides []string, groups [][]string, canonicalFrac, cisFrac float64) Strata {
	groupOf := make(map[string]int)
	for idx, grp := range groups {
		for _, pep := range grp {
			groupOf[pep] = idx
		}
	}

	// Position of each group in a shuffled ordering.
	perm := rng.Perm(len(groups))
	rank := make([]float64, len(groups))
	for position, groupIdx := range perm {
		rank[groupIdx] = float64(position)
	}

	// Groups with more than one maximal element are forced to an extreme.
	maxRank := float64(len(groups) - 1)
	for idx, grp := range groups {
		if multipleMaximalElements(grp) {
			if rng.Intn(2) == 0 {
				rank[idx] = -1
			} else {
				rank[idx] = maxRank + 1
			}
		}
	}

	order := make([]float64, len(peptides))
	ranked := make([]string, len(peptides))
	copy(ranked, peptides)
	for i, pep := range peptides {
		order[i] = rank[groupOf[pep]]
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return rank[groupOf[ranked[i]]] < rank[groupOf[ranked[j]]]
	})

	sort.Float64s(order)
	canonicalCut := quantile(order, canonicalFrac)
	cisCut := quantile(order, canonicalFrac+cisFrac)

	var result Strata
	for _, pep := range ranked {
		r := rank[groupOf[pep]]
		switch {
		case r < canonicalCut:
			result.Canonical = append(result.Canonical, pep)
		case cisFrac > 0 && r < cisCut:
			result.CisSpliced = append(result.CisSpliced, pep)
		default:
			result.TransSpliced = append(result.TransSpliced, pep)
		}
	}
	return result
}
