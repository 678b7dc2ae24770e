package candidate

import (
	"context"
	"errors"
	"testing"

	"github.com/spigell/hf-importer/internal/huntflow"
)

type fakeLister struct {
	statuses  []*huntflow.Status
	vacancies []*huntflow.Vacancy
	err       error

	statusCalls  int
	vacancyCalls int
}

func (f *fakeLister) Statuses(context.Context) ([]*huntflow.Status, error) {
	f.statusCalls++
	return f.statuses, f.err
}

func (f *fakeLister) Vacancies(context.Context) ([]*huntflow.Vacancy, error) {
	f.vacancyCalls++
	return f.vacancies, f.err
}

func testCandidates() []*Candidate {
	return []*Candidate{
		{Position: "Engineer", LastName: "Smith", FirstName: "John", Status: "New"},
		{Position: "engineer", LastName: "Doe", FirstName: "Jane", Status: "new"},
		{Position: "Designer", LastName: "Roe", FirstName: "Rick", Status: "Interview"},
	}
}

func TestResolveIDs(t *testing.T) {
	lister := &fakeLister{
		statuses: []*huntflow.Status{
			{ID: 1, Name: "New"},
			{ID: 2, Name: "Interview"},
			{ID: 0, Name: "Broken"},
		},
		vacancies: []*huntflow.Vacancy{
			{ID: 10, Position: "Engineer"},
		},
	}
	candidates := testCandidates()

	if err := ResolveStatusIDs(context.Background(), lister, candidates); err != nil {
		t.Fatalf("resolve statuses: %v", err)
	}
	if err := ResolveVacancyIDs(context.Background(), lister, candidates); err != nil {
		t.Fatalf("resolve vacancies: %v", err)
	}

	if lister.statusCalls != 1 || lister.vacancyCalls != 1 {
		t.Fatalf("expected one fetch each, got %d/%d", lister.statusCalls, lister.vacancyCalls)
	}

	if *candidates[0].StatusID != 1 || *candidates[0].VacancyID != 10 {
		t.Fatalf("unexpected ids for first candidate")
	}
	if candidates[1].StatusID != nil || candidates[1].VacancyID != nil {
		t.Fatalf("matching must be case sensitive")
	}
	if *candidates[2].StatusID != 2 || candidates[2].VacancyID != nil {
		t.Fatalf("unexpected ids for third candidate")
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	lister := &fakeLister{
		statuses:  []*huntflow.Status{{ID: 1, Name: "New"}, {ID: 2, Name: "Interview"}},
		vacancies: []*huntflow.Vacancy{{ID: 10, Position: "Engineer"}, {ID: 20, Position: "Designer"}},
	}
	candidates := testCandidates()

	snapshot := func() []string {
		var ids []string
		for _, c := range candidates {
			ids = append(ids, idOrUnresolved(c.StatusID), idOrUnresolved(c.VacancyID))
		}
		return ids
	}

	var runs [][]string
	for i := 0; i < 2; i++ {
		if err := ResolveStatusIDs(context.Background(), lister, candidates); err != nil {
			t.Fatalf("resolve statuses: %v", err)
		}
		if err := ResolveVacancyIDs(context.Background(), lister, candidates); err != nil {
			t.Fatalf("resolve vacancies: %v", err)
		}
		runs = append(runs, snapshot())
	}

	for i := range runs[0] {
		if runs[0][i] != runs[1][i] {
			t.Fatalf("resolution differs between runs: %v vs %v", runs[0], runs[1])
		}
	}
}

func TestResolveDuplicateLabelsLaterWins(t *testing.T) {
	lister := &fakeLister{statuses: []*huntflow.Status{{ID: 1, Name: "New"}, {ID: 5, Name: "New"}}}
	candidates := testCandidates()

	if err := ResolveStatusIDs(context.Background(), lister, candidates); err != nil {
		t.Fatalf("resolve statuses: %v", err)
	}
	if *candidates[0].StatusID != 5 {
		t.Fatalf("expected later duplicate to win, got %d", *candidates[0].StatusID)
	}
}

func TestResolvePropagatesErrors(t *testing.T) {
	lister := &fakeLister{err: &huntflow.NetworkError{Method: "GET", URL: "/statuses", Status: "500"}}

	err := ResolveStatusIDs(context.Background(), lister, testCandidates())

	var netErr *huntflow.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %v", err)
	}
}

func TestUnresolvedAndReport(t *testing.T) {
	candidates := testCandidates()
	candidates[0].StatusID = intPtr(1)
	candidates[0].VacancyID = intPtr(10)
	candidates[2].StatusID = intPtr(2)

	unresolved := Unresolved(candidates)
	if len(unresolved) != 2 || unresolved[0] != candidates[1] || unresolved[1] != candidates[2] {
		t.Fatalf("unexpected unresolved list: %v", unresolved)
	}

	report := ReportByPosition(candidates)
	entries := report["Designer"]
	if len(entries) != 1 {
		t.Fatalf("expected 1 designer entry, got %d", len(entries))
	}
	if entries[0]["status_id"] != "2" || entries[0]["vacancy_id"] != "unresolved" {
		t.Fatalf("unexpected entry: %v", entries[0])
	}
	if entries[0]["name"] != "Roe Rick" {
		t.Fatalf("unexpected name: %q", entries[0]["name"])
	}
}
