package proteome

import (
	"fmt"

	"github.com/ChrisMcGann/pepbench/pkg/core"
	"github.com/ChrisMcGann/pepbench/pkg/scan"
)

// CheckAssignment re-derives, from scratch, whether a peptide is present in
// the proteome according to its assigned stratum. It shares no state with the
// embedder: the embedder's convergence is a best-effort heuristic and this
// check is the authoritative gate on what counts as ground truth.
func CheckAssignment(rec *core.Record, p Proteome, hasCis bool, enzyme core.Enzyme, maxIntervening int) bool {
	switch rec.Stratum {
	case core.Canonical:
		if rec.ProteinIdx < 0 || rec.ProteinIdx >= len(p) {
			return false
		}
		return scan.Contains(p[rec.ProteinIdx], enzyme.Prefix()+rec.Peptide)

	case core.CisSpliced:
		if rec.ProteinIdx < 0 || rec.ProteinIdx >= len(p) {
			return false
		}
		for _, protein := range p {
			if scan.Contains(protein, rec.Peptide) {
				return false
			}
		}
		return scan.CisPresent(p[rec.ProteinIdx], rec.Frag1, rec.Frag2, maxIntervening)

	case core.TransSpliced:
		pairs := scan.GeneratePairs(rec.Peptide)
		for _, protein := range p {
			if scan.Contains(protein, rec.Peptide) {
				return false
			}
			if hasCis && scan.FindCisReactants(protein, pairs, maxIntervening) != nil {
				return false
			}
		}
		return true
	}
	return false
}

// Validate checks every embedding record against the final proteome and
// filters out any peptide not embedded in exactly its assigned stratum.
// Returns the surviving records and the number dropped. Dropping is reported,
// never fatal: the run continues with a smaller but internally consistent
// ground truth set.
func Validate(records []core.Record, p Proteome, enzyme core.Enzyme, maxIntervening int) ([]core.Record, int) {
	fmt.Printf("\tRunning final validation.\n")

	hasCis := false
	for i := range records {
		if records[i].Stratum == core.CisSpliced {
			hasCis = true
			break
		}
	}

	valid := make([]core.Record, 0, len(records))
	for i := range records {
		if CheckAssignment(&records[i], p, hasCis, enzyme, maxIntervening) {
			valid = append(valid, records[i])
		}
	}

	dropped := len(records) - len(valid)
	fmt.Printf("\tFailed to embed %d peptides in the proteome.\n", dropped)
	return valid, dropped
}
