package proteome

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/ChrisMcGann/pepbench/pkg/core"
	"github.com/ChrisMcGann/pepbench/pkg/editor"
	"github.com/ChrisMcGann/pepbench/pkg/scan"
	"github.com/ChrisMcGann/pepbench/pkg/strata"
)

// Minimum start separation between two insertions on the same protein. The
// spliced and trans variants are asymmetric because a spliced insert extends
// past its start position by the filler length.
const (
	minCanonicalSeparation = 20
	minSplicedBefore       = 20
	minSplicedAfter        = 40
)

// maxEmbedRounds bounds the repair fixed point. Insertions on shared proteins
// can invalidate each other, so the loop relaxes until stable; peptides still
// unresolved at the cap are left for the final validator to drop.
const maxEmbedRounds = 30

// Embedder inserts ground truth peptides into a proteome and repairs the
// result until every peptide is embedded in exactly its assigned stratum or
// the round cap is hit.
type Embedder struct {
	rng            *rand.Rand
	enzyme         core.Enzyme
	maxIntervening int
}

// NewEmbedder builds an Embedder drawing randomness from the given seeded
// generator.
func NewEmbedder(rng *rand.Rand, enzyme core.Enzyme, maxIntervening int) *Embedder {
	return &Embedder{rng: rng, enzyme: enzyme, maxIntervening: maxIntervening}
}

// EmbedResult describes the outcome of the embedding fixed point. Records
// carry the final embedding metadata; Residual lists the peptides whose
// target proteins were still in flux when a capped run stopped.
type EmbedResult struct {
	Records    []core.Record
	Iterations int
	Converged  bool
	Residual   []string
}

// occupied tracks, per protein, the insertion start positions already used.
type occupied map[int][]int

// canonicalChoices returns all insertion indices at least
// minCanonicalSeparation away from every prior insertion on the protein.
func (o occupied) canonicalChoices(p Proteome, idx int) []int {
	positions, seen := o[idx]
	if !seen {
		o[idx] = []int{}
		return allPositions(p[idx])
	}
	var choices []int
	for i := 0; i < len(p[idx]); i++ {
		ok := true
		for _, pos := range positions {
			if abs(i-pos) < minCanonicalSeparation {
				ok = false
				break
			}
		}
		if ok {
			choices = append(choices, i)
		}
	}
	return choices
}

// splicedChoices returns insertion indices for a spliced insert: at least
// minSplicedBefore residues before, or minSplicedAfter residues after, every
// prior insertion. The trailing buffer is larger because the filler region
// extends the insert.
func (o occupied) splicedChoices(p Proteome, idx int) []int {
	positions, seen := o[idx]
	if !seen {
		o[idx] = []int{}
		return allPositions(p[idx])
	}
	var choices []int
	for i := 0; i < len(p[idx]); i++ {
		ok := true
		for _, pos := range positions {
			if i > pos-minSplicedBefore && i < pos+minSplicedAfter {
				ok = false
				break
			}
		}
		if ok {
			choices = append(choices, i)
		}
	}
	return choices
}

// transChoices returns insertion indices for a trans fragment: at least
// pepLen residues before, or minCanonicalSeparation residues after, every
// prior insertion.
func (o occupied) transChoices(p Proteome, idx, pepLen int) []int {
	positions, seen := o[idx]
	if !seen {
		o[idx] = []int{}
		return allPositions(p[idx])
	}
	var choices []int
	for i := 0; i < len(p[idx]); i++ {
		ok := true
		for _, pos := range positions {
			if i > pos-pepLen && i < pos+minCanonicalSeparation {
				ok = false
				break
			}
		}
		if ok {
			choices = append(choices, i)
		}
	}
	return choices
}

func allPositions(protein string) []int {
	choices := make([]int, len(protein))
	for i := range choices {
		choices[i] = i
	}
	return choices
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// addSequences runs the initial insertion pass over all three strata and
// returns the embedding records plus the set of proteins touched.
func (e *Embedder) addSequences(p Proteome, st *strata.Strata) ([]core.Record, occupied) {
	used := occupied{}
	records := make([]core.Record, 0, st.Total())

	for _, peptide := range st.Canonical {
		protIdx := e.rng.Intn(len(p))
		choices := used.canonicalChoices(p, protIdx)

		var position int
		p[protIdx], position = editor.InsertCanonical(
			e.rng, p[protIdx], e.enzyme.Prefix()+peptide, choices,
		)
		used[protIdx] = append(used[protIdx], position)
		records = append(records, core.Record{
			Peptide:     peptide,
			Stratum:     core.Canonical,
			ProteinIdx:  protIdx,
			ProteinIdxB: -1,
			Position:    position,
		})
	}

	for _, peptide := range st.CisSpliced {
		protIdx := e.rng.Intn(len(p))
		choices := used.splicedChoices(p, protIdx)

		var position, spliceSite int
		p[protIdx], position, spliceSite = editor.InsertSpliced(
			e.rng, p[protIdx], peptide, choices, nil,
		)
		used[protIdx] = append(used[protIdx], position)
		records = append(records, core.Record{
			Peptide:     peptide,
			Stratum:     core.CisSpliced,
			ProteinIdx:  protIdx,
			ProteinIdxB: -1,
			Position:    position,
			Frag1:       peptide[:spliceSite],
			Frag2:       peptide[spliceSite:],
		})
	}

	for _, peptide := range st.TransSpliced {
		idxA := e.rng.Intn(len(p))
		idxB := e.rng.Intn(len(p) - 1)
		if idxB >= idxA {
			idxB++
		}

		spliceSite := transSpliceSite(e.rng, peptide)
		frags := [2]string{peptide[:spliceSite], peptide[spliceSite:]}
		targets := [2]int{idxA, idxB}
		for i, frag := range frags {
			idx := targets[i]
			choices := used.transChoices(p, idx, len(peptide))
			var position int
			p[idx], position = editor.InsertCanonical(e.rng, p[idx], frag, choices)
			used[idx] = append(used[idx], position)
		}
		records = append(records, core.Record{
			Peptide:     peptide,
			Stratum:     core.TransSpliced,
			ProteinIdx:  idxA,
			ProteinIdxB: idxB,
			Position:    -1,
			Frag1:       frags[0],
			Frag2:       frags[1],
		})
	}

	return records, used
}

// transSpliceSite draws a splice site in [2, len(peptide)-2], keeping both
// trans fragments at least two residues long where the peptide allows it.
func transSpliceSite(rng *rand.Rand, peptide string) int {
	if len(peptide) < 4 {
		return 1
	}
	return 2 + rng.Intn(len(peptide)-3)
}

// checkSequences re-scans the affected proteins and repairs every peptide
// that is no longer embedded in its assigned stratum. Returns the proteins
// touched during the round.
func (e *Embedder) checkSequences(records []core.Record, p Proteome, modified map[int]bool, round int, hasCis bool) map[int]bool {
	newlyModified := map[int]bool{}
	modifiedIDs := sortedKeys(modified)

	// Canonical peptides: re-append when a later insertion overwrote them.
	for i := range records {
		rec := &records[i]
		if rec.Stratum != core.Canonical {
			continue
		}
		if round > 1 && !modified[rec.ProteinIdx] {
			continue
		}
		peptide := e.enzyme.Prefix() + rec.Peptide
		if !scan.Contains(p[rec.ProteinIdx], peptide) {
			rec.Position = len(p[rec.ProteinIdx])
			p[rec.ProteinIdx] += peptide
			newlyModified[rec.ProteinIdx] = true
		}
	}

	// Cisspliced peptides: scrub contiguous collisions anywhere, then restore
	// the fragment pairing in the target protein if the bound was violated.
	for i := range records {
		rec := &records[i]
		if rec.Stratum != core.CisSpliced {
			continue
		}
		for _, idx := range modifiedIDs {
			if scan.Contains(p[idx], rec.Peptide) {
				p[idx] = editor.Scrub(e.rng, p[idx], rec.Peptide)
				newlyModified[idx] = true
			}
		}

		if round > 1 && !modified[rec.ProteinIdx] {
			continue
		}
		if scan.CisPresent(p[rec.ProteinIdx], rec.Frag1, rec.Frag2, e.maxIntervening) {
			continue
		}

		// Re-insert with the splice site range narrowed toward the shorter
		// fragment, so the revised split cannot reproduce the failure.
		var spliceRange []int
		if len(rec.Frag1) > len(rec.Frag2) {
			spliceRange = editor.SpliceRange(1, len(rec.Frag1)-1)
		} else {
			spliceRange = editor.SpliceRange(len(rec.Frag1)+1, len(rec.Peptide))
		}
		var spliceSite int
		p[rec.ProteinIdx], rec.Position, spliceSite = editor.InsertSpliced(
			e.rng, p[rec.ProteinIdx], rec.Peptide, nil, spliceRange,
		)
		rec.Frag1 = rec.Peptide[:spliceSite]
		rec.Frag2 = rec.Peptide[spliceSite:]
		newlyModified[rec.ProteinIdx] = true
	}

	// Transspliced peptides: scrub contiguous and accidental cis pairings.
	for i := range records {
		rec := &records[i]
		if rec.Stratum != core.TransSpliced {
			continue
		}
		var pairs []scan.Pair
		for _, idx := range modifiedIDs {
			if scan.Contains(p[idx], rec.Peptide) {
				p[idx] = editor.Scrub(e.rng, p[idx], rec.Peptide)
				newlyModified[idx] = true
			}
			if !hasCis {
				continue
			}
			if pairs == nil {
				pairs = scan.GeneratePairs(rec.Peptide)
			}
			for _, frag := range scan.FindCisReactants(p[idx], pairs, e.maxIntervening) {
				p[idx] = editor.Scrub(e.rng, p[idx], frag)
				newlyModified[idx] = true
			}
		}
	}

	return newlyModified
}

// Embed inserts every ground truth peptide into the proteome according to its
// stratum and iterates repair rounds, restricted to the proteins touched in
// the previous round, until stable or the round cap is reached. The proteome
// is mutated in place.
func (e *Embedder) Embed(p Proteome, st *strata.Strata) *EmbedResult {
	hasCis := len(st.CisSpliced) > 0

	records, used := e.addSequences(p, st)
	modified := map[int]bool{}
	for idx := range used {
		modified[idx] = true
	}

	round := 1
	for len(modified) > 0 {
		fmt.Printf("\tSequence adding, iteration %d, %d proteins to check.\n", round, len(modified))
		modified = e.checkSequences(records, p, modified, round, hasCis)

		if round == maxEmbedRounds && len(modified) > 0 {
			return &EmbedResult{
				Records:    records,
				Iterations: round,
				Converged:  false,
				Residual:   residualPeptides(records, modified),
			}
		}
		round++
	}

	return &EmbedResult{Records: records, Iterations: round - 1, Converged: true}
}

// residualPeptides lists the peptides whose target proteins were still being
// modified when a capped run stopped.
func residualPeptides(records []core.Record, modified map[int]bool) []string {
	var residual []string
	for i := range records {
		rec := &records[i]
		if modified[rec.ProteinIdx] || (rec.Stratum == core.TransSpliced && modified[rec.ProteinIdxB]) {
			residual = append(residual, rec.Peptide)
		}
	}
	return residual
}

func sortedKeys(set map[int]bool) []int {
	keys := make([]int, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}
