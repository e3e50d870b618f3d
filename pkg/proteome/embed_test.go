package proteome

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/ChrisMcGann/pepbench/pkg/core"
	"github.com/ChrisMcGann/pepbench/pkg/scan"
	"github.com/ChrisMcGann/pepbench/pkg/strata"
)

func testProteome() Proteome {
	return Proteome{"MITTAGESSENHIERSCHNELL", "TESTINGSEQADD", "YKRKLMNPQRS"}
}

func testStrata() *strata.Strata {
	return &strata.Strata{
		Canonical:    []string{"HAPPY"},
		CisSpliced:   []string{"TIRED"},
		TransSpliced: []string{"INRS"},
	}
}

func TestEmbedAllStrata(t *testing.T) {
	p := testProteome()
	rng := rand.New(rand.NewSource(42))

	embedder := NewEmbedder(rng, core.NoEnzyme, 25)
	result := embedder.Embed(p, testStrata())

	if !result.Converged {
		t.Fatalf("embedding did not converge after %d rounds", result.Iterations)
	}
	if len(result.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(result.Records))
	}

	byPeptide := map[string]*core.Record{}
	for i := range result.Records {
		byPeptide[result.Records[i].Peptide] = &result.Records[i]
	}

	// Canonical: contiguous in exactly one protein.
	canonical := byPeptide["HAPPY"]
	if canonical == nil || canonical.Stratum != core.Canonical {
		t.Fatalf("missing canonical record: %+v", result.Records)
	}
	occurrences := 0
	for _, protein := range p {
		occurrences += strings.Count(protein, "HAPPY")
	}
	if occurrences != 1 {
		t.Errorf("canonical peptide occurs %d times, want 1", occurrences)
	}
	if !scan.Contains(p[canonical.ProteinIdx], "HAPPY") {
		t.Errorf("canonical peptide missing from its recorded protein")
	}

	// Cisspliced: fragments paired in the target, never contiguous.
	cis := byPeptide["TIRED"]
	if cis == nil || cis.Stratum != core.CisSpliced {
		t.Fatalf("missing cisspliced record: %+v", result.Records)
	}
	if cis.Frag1+cis.Frag2 != "TIRED" {
		t.Errorf("fragments %q+%q do not reassemble the peptide", cis.Frag1, cis.Frag2)
	}
	for idx, protein := range p {
		if scan.Contains(protein, "TIRED") {
			t.Errorf("cisspliced peptide contiguous in protein %d: %q", idx, protein)
		}
	}
	if !scan.CisPresent(p[cis.ProteinIdx], cis.Frag1, cis.Frag2, 25) {
		t.Errorf("cisspliced fragments not paired in protein %d", cis.ProteinIdx)
	}

	// Transspliced: split across two distinct proteins, never contiguous and
	// never validly paired within one protein.
	trans := byPeptide["INRS"]
	if trans == nil || trans.Stratum != core.TransSpliced {
		t.Fatalf("missing transspliced record: %+v", result.Records)
	}
	if trans.ProteinIdx == trans.ProteinIdxB {
		t.Errorf("trans fragments assigned to the same protein %d", trans.ProteinIdx)
	}
	pairs := scan.GeneratePairs("INRS")
	for idx, protein := range p {
		if scan.Contains(protein, "INRS") {
			t.Errorf("transspliced peptide contiguous in protein %d", idx)
		}
		if scan.FindCisReactants(protein, pairs, 25) != nil {
			t.Errorf("transspliced peptide validly paired within protein %d: %q", idx, protein)
		}
	}

	// The final validator must agree with all three embeddings.
	valid, dropped := Validate(result.Records, p, core.NoEnzyme, 25)
	if dropped != 0 || len(valid) != 3 {
		t.Errorf("validation dropped %d of %d records", dropped, len(result.Records))
	}
}

func TestEmbedTrypsinPrefix(t *testing.T) {
	p := Proteome{
		"QWQWQWQWQWQWQWQWQWQWQWQWQWQWQWQWQWQWQWQW",
		"CMCMCMCMCMCMCMCMCMCMCMCMCMCMCMCMCMCMCMCM",
	}
	rng := rand.New(rand.NewSource(42))

	embedder := NewEmbedder(rng, core.Trypsin, 25)
	st := &strata.Strata{Canonical: []string{"HAPPY"}}
	result := embedder.Embed(p, st)

	if !result.Converged {
		t.Fatalf("embedding did not converge")
	}
	rec := result.Records[0]
	if !scan.Contains(p[rec.ProteinIdx], "KHAPPY") {
		t.Errorf("trypsin embedding must carry the cleavage prefix: %q", p[rec.ProteinIdx])
	}
}

func TestEmbedDeterminism(t *testing.T) {
	run := func() (Proteome, []core.Record) {
		p := testProteome()
		rng := rand.New(rand.NewSource(42))

		st := testStrata()
		Clean(rng, p, st, 25)
		embedder := NewEmbedder(rng, core.NoEnzyme, 25)
		result := embedder.Embed(p, st)
		return p, result.Records
	}

	proteomeA, recordsA := run()
	proteomeB, recordsB := run()

	if !reflect.DeepEqual(proteomeA, proteomeB) {
		t.Errorf("same seed produced different proteomes:\n%v\n%v", proteomeA, proteomeB)
	}
	if !reflect.DeepEqual(recordsA, recordsB) {
		t.Errorf("same seed produced different records:\n%v\n%v", recordsA, recordsB)
	}
}

func TestOccupiedChoices(t *testing.T) {
	p := Proteome{strings.Repeat("A", 100)}

	used := occupied{}
	used[0] = []int{50}

	choices := used.canonicalChoices(p, 0)
	for _, choice := range choices {
		if choice > 30 && choice < 70 {
			t.Errorf("canonical choice %d violates the minimum separation around 50", choice)
		}
	}

	spliced := used.splicedChoices(p, 0)
	for _, choice := range spliced {
		if choice > 30 && choice < 90 {
			t.Errorf("spliced choice %d violates the asymmetric buffer around 50", choice)
		}
	}

	trans := used.transChoices(p, 0, 10)
	for _, choice := range trans {
		if choice > 40 && choice < 70 {
			t.Errorf("trans choice %d violates the separation around 50", choice)
		}
	}
}
