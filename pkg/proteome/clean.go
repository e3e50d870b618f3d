package proteome

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/ChrisMcGann/pepbench/pkg/editor"
	"github.com/ChrisMcGann/pepbench/pkg/scan"
	"github.com/ChrisMcGann/pepbench/pkg/strata"
)

// maxCleanPasses bounds the cleaning fixed point. Scrubbing replaces matched
// residues with random filler, which can coincidentally create new matches,
// so convergence normally takes a handful of passes; hitting the cap means
// something pathological and is reported loudly.
const maxCleanPasses = 100

// CleanResult describes the outcome of the cleaning fixed point.
type CleanResult struct {
	Iterations int
	Converged  bool
}

// removeMatches runs one cleaning pass: for every ground truth peptide it
// scrubs contiguous occurrences in the proteins of interest, and for peptides
// outside the canonical stratum it additionally scrubs accidental cis
// pairings whenever the cis stratum is populated. Returns the indices of
// proteins modified during the pass.
func removeMatches(rng *rand.Rand, p Proteome, st *strata.Strata, maxIntervening int, idsOfInterest []int) []int {
	if idsOfInterest == nil {
		idsOfInterest = make([]int, len(p))
		for i := range p {
			idsOfInterest[i] = i
		}
	}

	hasCis := len(st.CisSpliced) > 0
	modified := map[int]bool{}

	checkStratum := func(peptides []string, splicedChecks bool) {
		for _, peptide := range peptides {
			var pairs []scan.Pair
			if splicedChecks {
				pairs = scan.GeneratePairs(peptide)
			}
			for _, idx := range idsOfInterest {
				if scan.Contains(p[idx], peptide) {
					modified[idx] = true
					p[idx] = editor.Scrub(rng, p[idx], peptide)
				}
				if splicedChecks {
					for _, frag := range scan.FindCisReactants(p[idx], pairs, maxIntervening) {
						modified[idx] = true
						p[idx] = editor.Scrub(rng, p[idx], frag)
					}
				}
			}
		}
	}

	checkStratum(st.Canonical, false)
	checkStratum(st.CisSpliced, hasCis)
	checkStratum(st.TransSpliced, hasCis)

	ids := make([]int, 0, len(modified))
	for idx := range modified {
		ids = append(ids, idx)
	}
	sort.Ints(ids)
	return ids
}

// Clean removes every pre-existing occurrence of the ground truth peptides
// from the proteome, iterating to a fixed point because scrubbing one
// occurrence can coincidentally introduce another. The proteome is mutated in
// place.
func Clean(rng *rand.Rand, p Proteome, st *strata.Strata, maxIntervening int) CleanResult {
	modifiedIDs := removeMatches(rng, p, st, maxIntervening, nil)

	iteration := 1
	for len(modifiedIDs) > 0 {
		fmt.Printf("\tPeptide cleaning, iteration %d, %d proteins to clean.\n", iteration, len(modifiedIDs))
		modifiedIDs = removeMatches(rng, p, st, maxIntervening, modifiedIDs)

		if iteration == maxCleanPasses {
			fmt.Printf("\tWARNING: cleaning hit the %d pass cap with %d proteins still dirty.\n",
				maxCleanPasses, len(modifiedIDs))
			return CleanResult{Iterations: iteration, Converged: false}
		}
		iteration++
	}

	return CleanResult{Iterations: iteration, Converged: true}
}
