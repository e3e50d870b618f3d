package strata

import (
	"math/rand"
	"testing"
)

func TestLongestCommonSubstring(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"MITTAGESSEN", "ESSEN", 5},
		{"ACDEF", "VWXYZ", 0},
		{"HAPPY", "HAPPY", 5},
		{"", "HAPPY", 0},
		{"TAPPYK", "HAPPYG", 4},
	}

	for _, tt := range tests {
		if got := longestCommonSubstring(tt.a, tt.b); got != tt.want {
			t.Errorf("longestCommonSubstring(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTooClose(t *testing.T) {
	tests := []struct {
		name     string
		peptide1 string
		peptide2 string
		cutoff   int
		want     bool
	}{
		{
			name:     "substring is always too close",
			peptide1: "ESSEN",
			peptide2: "MITTAGESSEN",
			cutoff:   3,
			want:     true,
		},
		{
			name:     "shared residues under cutoff",
			peptide1: "HAPPYDAY",
			peptide2: "HAPPYDHG",
			cutoff:   3,
			want:     true,
		},
		{
			name:     "both fragments of a split inside the longer peptide",
			peptide1: "ESSENMLTT",
			peptide2: "MLTTAGESSEN",
			cutoff:   1,
			want:     true,
		},
		{
			name:     "disjoint alphabets are never close",
			peptide1: "ACACAC",
			peptide2: "DEDEDE",
			cutoff:   3,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tooClose(tt.peptide1, tt.peptide2, tt.cutoff); got != tt.want {
				t.Errorf("tooClose(%q, %q, %d) = %v, want %v",
					tt.peptide1, tt.peptide2, tt.cutoff, got, tt.want)
			}
		})
	}
}

func TestGroupPeptides(t *testing.T) {
	// ESSEN bridges MITTAGESSEN and ESSENSMARKE, so all three collapse into
	// one group; the disjoint peptide stays alone.
	peptides := []string{"MITTAGESSEN", "ESSEN", "ESSENSMARKE", "DKDKDKDK"}
	groups := GroupPeptides(peptides, 3)

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2: %v", len(groups), groups)
	}

	sizes := map[int]bool{}
	for _, grp := range groups {
		sizes[len(grp)] = true
	}
	if !sizes[3] || !sizes[1] {
		t.Errorf("group sizes wrong: %v", groups)
	}
}

func TestMultipleMaximalElements(t *testing.T) {
	tests := []struct {
		name  string
		group []string
		want  bool
	}{
		{
			name:  "chain of containment is rankable",
			group: []string{"SSE", "ESSEN", "MITTAGESSEN"},
			want:  false,
		},
		{
			name:  "two incomparable subsequences",
			group: []string{"MITTAGESSEN", "MITTA", "ESSEN"},
			want:  true,
		},
		{
			name:  "no containment at all",
			group: []string{"ACACAC", "DEDEDE"},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := multipleMaximalElements(tt.group); got != tt.want {
				t.Errorf("multipleMaximalElements(%v) = %v, want %v", tt.group, got, tt.want)
			}
		})
	}
}

func TestAssignFractions(t *testing.T) {
	// Nine pairwise dissimilar peptides built from disjoint residue pairs.
	peptides := []string{
		"ACACAC", "DEDEDE", "FGFGFG",
		"HKHKHK", "LMLMLM", "NPNPNP",
		"QRQRQR", "STSTST", "VYVYVY",
	}
	rng := rand.New(rand.NewSource(42))
	groups := GroupPeptides(peptides, 3)
	if len(groups) != len(peptides) {
		t.Fatalf("expected singleton groups, got %v", groups)
	}

	st := Assign(rng, peptides, groups, 1.0/3.0, 1.0/3.0)

	if st.Total() != len(peptides) {
		t.Fatalf("assignment lost peptides: %d of %d", st.Total(), len(peptides))
	}
	if len(st.Canonical) != 3 || len(st.CisSpliced) != 3 || len(st.TransSpliced) != 3 {
		t.Errorf("stratum sizes = %d/%d/%d, want 3/3/3",
			len(st.Canonical), len(st.CisSpliced), len(st.TransSpliced))
	}

	// No peptide may land in two strata.
	seen := map[string]int{}
	for _, pep := range st.Canonical {
		seen[pep]++
	}
	for _, pep := range st.CisSpliced {
		seen[pep]++
	}
	for _, pep := range st.TransSpliced {
		seen[pep]++
	}
	for pep, count := range seen {
		if count != 1 {
			t.Errorf("peptide %s assigned %d times", pep, count)
		}
	}
}

func TestAssignNoCisBucket(t *testing.T) {
	peptides := []string{"ACACAC", "DEDEDE", "FGFGFG", "HKHKHK"}
	rng := rand.New(rand.NewSource(42))
	groups := GroupPeptides(peptides, 3)

	st := Assign(rng, peptides, groups, 0.5, 0.0)

	if len(st.CisSpliced) != 0 {
		t.Errorf("cis fraction 0 must leave the cis stratum empty, got %v", st.CisSpliced)
	}
	if st.Total() != len(peptides) {
		t.Errorf("assignment lost peptides: %d of %d", st.Total(), len(peptides))
	}
	if len(st.Canonical) == 0 || len(st.TransSpliced) == 0 {
		t.Errorf("expected both canonical and transspliced to be populated: %d/%d",
			len(st.Canonical), len(st.TransSpliced))
	}
}

func TestAssignGroupsStayTogether(t *testing.T) {
	// MITTAGESSEN and ESSEN share a group and must land in the same stratum.
	peptides := []string{
		"MITTAGESSEN", "ESSEN",
		"ACACAC", "DKDKDK", "FGFGFG", "HKHKHK",
	}
	rng := rand.New(rand.NewSource(7))
	groups := GroupPeptides(peptides, 3)

	st := Assign(rng, peptides, groups, 0.5, 0.25)

	stratumOf := map[string]string{}
	for _, pep := range st.Canonical {
		stratumOf[pep] = "canonical"
	}
	for _, pep := range st.CisSpliced {
		stratumOf[pep] = "cisspliced"
	}
	for _, pep := range st.TransSpliced {
		stratumOf[pep] = "transspliced"
	}

	if stratumOf["MITTAGESSEN"] != stratumOf["ESSEN"] {
		t.Errorf("grouped peptides split across strata: %v vs %v",
			stratumOf["MITTAGESSEN"], stratumOf["ESSEN"])
	}
}
