// Package editor provides the primitive sequence edits used to embed ground
// truth peptides in a proteome: canonical insertion, spliced insertion and
// substring scrubbing.
package editor

import (
	"math/rand"
	"strings"

	"github.com/ChrisMcGann/pepbench/pkg/core"
)

// Maximum length of the random intervening sequence placed between the two
// fragments of a spliced insert.
const maxFillerLength = 26

// InsertCanonical embeds a fragment in a protein sequence at one of the given
// candidate positions, chosen uniformly at random. Interior inserts overwrite
// len(fragment) residues so sequence length is conserved; with no candidates
// the fragment is appended instead. Returns the edited sequence and the
// position used.
func InsertCanonical(rng *rand.Rand, sequence, fragment string, choices []int) (string, int) {
	if len(choices) == 0 {
		return sequence + fragment, len(sequence)
	}

	position := choices[rng.Intn(len(choices))]
	end := position + len(fragment)
	if end > len(sequence) {
		end = len(sequence)
	}
	return sequence[:position] + fragment + sequence[end:], position
}

// InsertSpliced embeds a peptide in a protein sequence as two fragments
// separated by a random intervening sequence of length 1 to 26. The splice
// site is drawn uniformly from [1, len(peptide)-1], or from spliceRange when
// a repair needs to revise a previous choice. Position selection follows the
// same rule as InsertCanonical, overwriting len(peptide) residues on interior
// inserts. Returns the edited sequence, the position used and the splice site.
func InsertSpliced(rng *rand.Rand, sequence, peptide string, choices, spliceRange []int) (string, int, int) {
	var spliceSite int
	if spliceRange == nil {
		spliceSite = 1 + rng.Intn(len(peptide)-1)
	} else {
		spliceSite = spliceRange[rng.Intn(len(spliceRange))]
	}

	filler := core.RandomResidues(rng, 1+rng.Intn(maxFillerLength))
	insert := peptide[:spliceSite] + filler + peptide[spliceSite:]

	if len(choices) == 0 {
		return sequence + insert, len(sequence), spliceSite
	}

	position := choices[rng.Intn(len(choices))]
	end := position + len(peptide)
	if end > len(sequence) {
		end = len(sequence)
	}
	return sequence[:position] + insert + sequence[end:], position, spliceSite
}

// Scrub destroys every non-overlapping occurrence of a substring by replacing
// it with random filler of equal length, preserving the sequence length so
// the recorded positions of other insertions stay valid.
func Scrub(rng *rand.Rand, sequence, substring string) string {
	if substring == "" {
		return sequence
	}

	var sb strings.Builder
	sb.Grow(len(sequence))
	for {
		idx := strings.Index(sequence, substring)
		if idx < 0 {
			sb.WriteString(sequence)
			return sb.String()
		}
		sb.WriteString(sequence[:idx])
		sb.WriteString(core.RandomResidues(rng, len(substring)))
		sequence = sequence[idx+len(substring):]
	}
}

// SpliceRange builds the restricted splice site range used when a repair must
// move the splice site toward the shorter fragment. Both bounds follow slice
// convention: lo inclusive, hi exclusive.
func SpliceRange(lo, hi int) []int {
	if hi <= lo {
		return []int{lo}
	}
	sites := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		sites = append(sites, i)
	}
	return sites
}
