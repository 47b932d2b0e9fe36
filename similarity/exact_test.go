package similarity

import (
	"path/filepath"
	"testing"
)

func TestComputeExactMultiWordWithPos(t *testing.T) {
	in := writeDDT(t, "ddt.csv",
		"wordA#POSTAGa wordB#POSTAGb wordC#POSTAGc\t0\tword1#POSTAG1 word2#POSTAG2#1:1.000,word3#POSTAG3#2:0.0667")
	out := filepath.Join(t.TempDir(), "sim.csv")

	summary, err := ComputeExact(in, out, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	equalLines(t, []string{
		"wordA wordB wordC#0\tword1 word2#1\t1.0",
		"wordA wordB wordC#0\tword3#2\t0.0667",
	}, readLines(t, out))

	if summary.Senses != 1 || summary.Triples != 2 {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestComputeExactKeys(t *testing.T) {
	in := writeDDT(t, "ddt.csv.gz", "Foo#NP\t0\tBar#NP#1:1.0, Baz#NP#0:0.5")

	cases := []struct {
		tagged   bool
		expected []string
	}{
		{false, []string{"Foo#0\tBar#1\t1.0", "Foo#0\tBaz#0\t0.5"}},
		{true, []string{"Foo#NP#0\tBar#NP#1\t1.0", "Foo#NP#0\tBaz#NP#0\t0.5"}},
	}

	for _, c := range cases {
		out := filepath.Join(t.TempDir(), "sim.csv.gz")
		if _, err := ComputeExact(in, out, Options{Tagged: c.tagged}); err != nil {
			t.Fatalf("tagged %v: unexpected error: %v", c.tagged, err)
		}

		equalLines(t, c.expected, readLines(t, out))
	}
}

func TestComputeExactResolvesLemmas(t *testing.T) {
	in := writeDDT(t, "ddt.csv",
		"bank\t0\triver, money#0:0.5, ghost",
		"bank\t1\tmoney",
		"river\t3\tbank",
		"broken",
		"money\t0\tbank#1:0.0",
	)
	out := filepath.Join(t.TempDir(), "sim.csv")

	summary, err := ComputeExact(in, out, Options{})
	if err != nil {
		t.Fatal(err)
	}

	equalLines(t, []string{
		"bank#0\triver#3\t1.0",
		"bank#0\tmoney#0\t0.5",
		"bank#0\tghost#0\t1.0",
		"bank#1\tmoney#0\t1.0",
		"river#3\tbank#0\t1.0",
		"river#3\tbank#1\t1.0",
	}, readLines(t, out))

	if summary.Senses != 4 || summary.Malformed != 1 || summary.Dropped != 1 || summary.Triples != 6 {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestComputeExactSkipsEmptyClusterWords(t *testing.T) {
	in := writeDDT(t, "ddt.csv",
		"bank\t0\triver, ",
		"tree\t0\tleaf, , ",
	)
	out := filepath.Join(t.TempDir(), "sim.csv")

	summary, err := ComputeExact(in, out, Options{})
	if err != nil {
		t.Fatal(err)
	}

	equalLines(t, []string{
		"bank#0\triver#0\t1.0",
		"tree#0\tleaf#0\t1.0",
	}, readLines(t, out))

	if summary.Triples != 2 {
		t.Errorf("unexpected summary %+v", summary)
	}
}

func TestBuildLemmaIndex(t *testing.T) {
	in := writeDDT(t, "ddt.csv",
		"bank#NN\t0\tx",
		"bank#NN\t1\tx",
		"bank#VB\t0\tx",
	)

	li, err := BuildLemmaIndex(in, false, nil)
	if err != nil {
		t.Fatal(err)
	}

	if ids := li.Candidates("bank"); len(ids) != 3 || ids[0] != 0 || ids[1] != 1 || ids[2] != 0 {
		t.Errorf("unexpected candidates %v", ids)
	}

	li, err = BuildLemmaIndex(in, true, nil)
	if err != nil {
		t.Fatal(err)
	}

	if ids := li.Candidates("bank#NN"); len(ids) != 2 {
		t.Errorf("unexpected tagged candidates %v", ids)
	}

	if ids := li.Candidates("unknown"); len(ids) != 1 || ids[0] != 0 {
		t.Errorf("expected unknown lemma to resolve to 0, got %v", ids)
	}
}

func TestExactStrategy(t *testing.T) {
	in := writeDDT(t, "ddt.csv", "a\t0\tb#1:0.25")
	out := filepath.Join(t.TempDir(), "sim.csv.zst")

	var s Strategy = Exact{}
	if _, err := s.Compute(in, out); err != nil {
		t.Fatal(err)
	}

	equalLines(t, []string{"a#0\tb#1\t0.25"}, readLines(t, out))
}

func TestComputeExactMissingInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sim.csv")
	if _, err := ComputeExact(filepath.Join(t.TempDir(), "missing.csv"), out, Options{}); err == nil {
		t.Fatal("expected an error for a missing input")
	}
}
