package proteome

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteCleaned(t *testing.T) {
	p := Proteome{"MLTTAGESSEN", "TESTLNG"}

	var buf bytes.Buffer
	if err := p.WriteCleaned(&buf); err != nil {
		t.Fatalf("WriteCleaned failed: %v", err)
	}

	want := ">cleaned_protein_0\nMLTTAGESSEN\n>cleaned_protein_1\nTESTLNG\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteModifiedWraps(t *testing.T) {
	long := strings.Repeat("ACDEFGHKLM", 20) // 200 residues
	p := Proteome{long}

	var buf bytes.Buffer
	if err := p.WriteModified(&buf); err != nil {
		t.Fatalf("WriteModified failed: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if lines[0] != ">modified_protein_0" {
		t.Fatalf("header = %q", lines[0])
	}
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header plus 3 sequence lines", len(lines))
	}
	if len(lines[1]) != 80 || len(lines[2]) != 80 || len(lines[3]) != 40 {
		t.Errorf("wrap widths = %d/%d/%d, want 80/80/40", len(lines[1]), len(lines[2]), len(lines[3]))
	}
	if strings.Join(lines[1:], "") != long {
		t.Errorf("wrapped sequence does not reassemble the protein")
	}
}

func TestLoadNormalizesIL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "proteome.fasta")
	content := ">sp|P00001|TEST protein one\nMITTAGESSEN\n>sp|P00002|TEST protein two\nHIERIST\nDIEILIADE\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(p) != 2 {
		t.Fatalf("got %d proteins, want 2", len(p))
	}
	if p[0] != "MLTTAGESSEN" {
		t.Errorf("protein 0 = %q, want I/L normalized %q", p[0], "MLTTAGESSEN")
	}
	if p[1] != "HLERLSTDLELLLADE" {
		t.Errorf("protein 1 = %q, want multi-line sequence joined and normalized", p[1])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.fasta")); err == nil {
		t.Errorf("expected error for missing proteome file")
	}
}
