package domain

import (
	"errors"
	"testing"
)

func TestRunRequest_SanitizeAndPairs(t *testing.T) {
	req := RunRequest{
		Project:  "  demo ",
		Domains:  []string{"https://www.a.it/", "a.it", "", "localhost", "B.it."},
		Articles: []string{" primo  articolo ", "", "secondo"},
	}
	req.Sanitize()

	if req.Project != "demo" {
		t.Errorf("Project = %q", req.Project)
	}
	if len(req.Domains) != 2 || req.Domains[0] != "a.it" || req.Domains[1] != "b.it" {
		t.Fatalf("Domains = %v", req.Domains)
	}
	if len(req.Articles) != 2 || req.Articles[0] != "primo articolo" {
		t.Fatalf("Articles = %v", req.Articles)
	}

	pairs := req.Pairs()
	want := []SearchRequest{
		{Domain: "a.it", Query: "primo articolo"},
		{Domain: "b.it", Query: "primo articolo"},
		{Domain: "a.it", Query: "secondo"},
		{Domain: "b.it", Query: "secondo"},
	}
	if len(pairs) != len(want) {
		t.Fatalf("len(Pairs()) = %d, want %d", len(pairs), len(want))
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Errorf("pair %d = %+v, want %+v", i, pairs[i], want[i])
		}
	}
}

func TestRunRequest_Validate(t *testing.T) {
	empty := RunRequest{Domains: []string{"a.it"}}
	if err := empty.Validate(10); !errors.Is(err, ErrEmptyRun) {
		t.Errorf("Validate() = %v, want ErrEmptyRun", err)
	}

	big := RunRequest{Domains: []string{"a.it", "b.it"}, Articles: []string{"x", "y"}}
	if err := big.Validate(3); !errors.Is(err, ErrTooManyPairs) {
		t.Errorf("Validate() = %v, want ErrTooManyPairs", err)
	}
	if err := big.Validate(0); err != nil {
		t.Errorf("Validate(0) = %v, want nil (no limit)", err)
	}
}

func TestRun_Stats(t *testing.T) {
	run := Run{Items: []RunItem{
		{Result: FoundResult("u", "t", "")},
		{Result: NotFoundResult()},
		{Result: FailedResult("Errore: boom")},
		{Result: FoundResult("u2", "t2", "")},
	}}

	st := run.Stats()
	if st != (RunStats{Total: 4, Found: 2, NotFound: 1, Failed: 1}) {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestRunFilter_Sanitize(t *testing.T) {
	f := RunFilter{Limit: 1000, Offset: -3}
	f.Sanitize()
	if f.Limit != MaxRunListLimit || f.Offset != 0 {
		t.Errorf("Sanitize() = %+v", f)
	}

	f = RunFilter{}
	f.Sanitize()
	if f.Limit != DefaultRunListLimit {
		t.Errorf("default Limit = %d", f.Limit)
	}
}
