package proteome

import (
	"testing"

	"github.com/ChrisMcGann/pepbench/pkg/core"
)

var modifiedProteome = Proteome{
	"MITTAGETLIREDIERSCHNELLRS",
	"TEININGSEQADD",
	"YKRKLMNPQRHAPPY",
}

func TestCheckAssignment(t *testing.T) {
	tests := []struct {
		name   string
		record core.Record
		want   bool
	}{
		{
			name: "canonical present in its protein",
			record: core.Record{
				Peptide: "HAPPY", Stratum: core.Canonical,
				ProteinIdx: 2, ProteinIdxB: -1,
			},
			want: true,
		},
		{
			name: "canonical absent",
			record: core.Record{
				Peptide: "HARRY", Stratum: core.Canonical,
				ProteinIdx: 2, ProteinIdxB: -1,
			},
			want: false,
		},
		{
			name: "cisspliced fragments paired in target",
			record: core.Record{
				Peptide: "TIRED", Stratum: core.CisSpliced,
				ProteinIdx: 0, ProteinIdxB: -1,
				Frag1: "T", Frag2: "IRED",
			},
			want: true,
		},
		{
			name: "cisspliced peptide present contiguously elsewhere",
			record: core.Record{
				Peptide: "HAPPY", Stratum: core.CisSpliced,
				ProteinIdx: 0, ProteinIdxB: -1,
				Frag1: "T", Frag2: "IRED",
			},
			want: false,
		},
		{
			name: "transspliced with no single protein pairing",
			record: core.Record{
				Peptide: "INRS", Stratum: core.TransSpliced,
				ProteinIdx: 0, ProteinIdxB: 2,
				Frag1: "IN", Frag2: "RS",
			},
			want: true,
		},
		{
			name: "transspliced but validly cis paired",
			record: core.Record{
				Peptide: "TIRED", Stratum: core.TransSpliced,
				ProteinIdx: 0, ProteinIdxB: 1,
				Frag1: "T", Frag2: "IRED",
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckAssignment(&tt.record, modifiedProteome, true, core.NoEnzyme, 25)
			if got != tt.want {
				t.Errorf("CheckAssignment(%s) = %v, want %v", tt.record.Peptide, got, tt.want)
			}
		})
	}
}

func TestCheckAssignmentTrypsin(t *testing.T) {
	proteome := Proteome{"AAAAAKHAPPYGGGGG"}
	record := core.Record{
		Peptide: "HAPPY", Stratum: core.Canonical,
		ProteinIdx: 0, ProteinIdxB: -1,
	}

	if !CheckAssignment(&record, proteome, false, core.Trypsin, 25) {
		t.Errorf("K-prefixed canonical peptide should validate under trypsin")
	}

	unprefixed := Proteome{"AAAAAHAPPYGGGGG"}
	if CheckAssignment(&record, unprefixed, false, core.Trypsin, 25) {
		t.Errorf("canonical peptide without cleavage prefix must fail under trypsin")
	}
}

func TestValidateDropsInvalid(t *testing.T) {
	records := []core.Record{
		{Peptide: "HAPPY", Stratum: core.Canonical, ProteinIdx: 2, ProteinIdxB: -1},
		{Peptide: "TIRED", Stratum: core.CisSpliced, ProteinIdx: 0, ProteinIdxB: -1, Frag1: "T", Frag2: "IRED"},
		{Peptide: "HARRY", Stratum: core.Canonical, ProteinIdx: 2, ProteinIdxB: -1},
	}

	valid, dropped := Validate(records, modifiedProteome, core.NoEnzyme, 25)

	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if len(valid) != 2 {
		t.Fatalf("valid = %d records, want 2", len(valid))
	}
	for _, rec := range valid {
		if rec.Peptide == "HARRY" {
			t.Errorf("invalid record survived validation")
		}
	}
}
