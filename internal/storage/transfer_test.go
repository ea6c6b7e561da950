package storage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vovakirdan/blockbuster/internal/core"
)

func TestParseScoreLine(t *testing.T) {
	testCases := []struct {
		line    string
		want    core.ScoreRecord
		wantErr bool
	}{
		{"120|3|ann", core.ScoreRecord{Score: 120, Level: 3, Name: "ann"}, false},
		{" 5 | 1 | bob ", core.ScoreRecord{Score: 5, Level: 1, Name: "bob"}, false},
		{"40|2|", core.ScoreRecord{Score: 40, Level: 2, Name: "anonymous"}, false},
		{"40|2|a|b", core.ScoreRecord{Score: 40, Level: 2, Name: "a b"}, false},
		{"40|2", core.ScoreRecord{}, true},
		{"x|2|ann", core.ScoreRecord{}, true},
		{"-1|2|ann", core.ScoreRecord{}, true},
		{"40|0|ann", core.ScoreRecord{}, true},
	}
	for _, tc := range testCases {
		got, err := ParseScoreLine(tc.line)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseScoreLine(%q) error = %v, wantErr %v", tc.line, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseScoreLine(%q) = %+v, expected %+v", tc.line, got, tc.want)
		}
	}
}

func TestExportImport(t *testing.T) {
	src := openTestStore(t)
	mustSave(t, src, "blockbuster", 50, 1, "bob")
	mustSave(t, src, "blockbuster", 300, 4, "ann")
	mustSave(t, src, "blockbuster", 120, 2, "cy")

	var buf bytes.Buffer
	n, err := src.Export(&buf, "blockbuster", 10)
	if err != nil {
		t.Fatalf("Export() failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Export() wrote %d lines, expected 3", n)
	}
	expected := "300|4|ann\n120|2|cy\n50|1|bob\n"
	if buf.String() != expected {
		t.Errorf("Export() = %q, expected %q", buf.String(), expected)
	}

	dst := openTestStore(t)
	res, err := dst.Import(strings.NewReader(buf.String()), "blockbuster_classic")
	if err != nil {
		t.Fatalf("Import() failed: %v", err)
	}
	if res.Imported != 3 || res.Skipped != 0 {
		t.Errorf("Import() = %+v, expected 3 imported", res)
	}

	scores, err := dst.TopScores("blockbuster_classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 || scores[0].Record() != (core.ScoreRecord{Score: 300, Level: 4, Name: "ann"}) {
		t.Errorf("imported scores = %+v", scores)
	}
	if scores[0].SessionID == "" || scores[0].SessionID != scores[2].SessionID {
		t.Error("imported rows should share one session ID")
	}
}

func TestImportSkipsMalformed(t *testing.T) {
	store := openTestStore(t)
	input := strings.Join([]string{
		"# exported scores",
		"100|2|ann",
		"garbage",
		"",
		"abc|1|bob",
		"90|1|cy",
	}, "\n")

	res, err := store.Import(strings.NewReader(input), "blockbuster")
	if err != nil {
		t.Fatalf("Import() failed: %v", err)
	}
	if res.Imported != 2 || res.Skipped != 2 {
		t.Errorf("Import() = %+v, expected 2 imported and 2 skipped", res)
	}
}
