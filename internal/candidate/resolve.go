package candidate

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spigell/hf-importer/internal/huntflow"
)

const unresolved = "unresolved"

type StatusLister interface {
	Statuses(ctx context.Context) ([]*huntflow.Status, error)
}

type VacancyLister interface {
	Vacancies(ctx context.Context) ([]*huntflow.Vacancy, error)
}

type labeled interface {
	Label() string
	Key() int
}

// ResolveStatusIDs fetches the statuses once and assigns StatusID by exact name match.
func ResolveStatusIDs(ctx context.Context, lister StatusLister, candidates []*Candidate) error {
	statuses, err := lister.Statuses(ctx)
	if err != nil {
		return fmt.Errorf("listing statuses: %w", err)
	}

	ids := indexByLabel(statuses)
	for _, c := range candidates {
		c.StatusID = lookup(ids, c.Status)
	}

	return nil
}

// ResolveVacancyIDs fetches the vacancies once and assigns VacancyID by exact position match.
func ResolveVacancyIDs(ctx context.Context, lister VacancyLister, candidates []*Candidate) error {
	vacancies, err := lister.Vacancies(ctx)
	if err != nil {
		return fmt.Errorf("listing vacancies: %w", err)
	}

	ids := indexByLabel(vacancies)
	for _, c := range candidates {
		c.VacancyID = lookup(ids, c.Position)
	}

	return nil
}

// indexByLabel skips entries without a label or id. On duplicate labels the later entry wins.
func indexByLabel[T labeled](items []T) map[string]int {
	ids := make(map[string]int, len(items))
	for _, item := range items {
		if item.Label() == "" || item.Key() == 0 {
			continue
		}
		ids[item.Label()] = item.Key()
	}

	return ids
}

func lookup(ids map[string]int, label string) *int {
	id, ok := ids[label]
	if !ok {
		return nil
	}

	return &id
}

// Unresolved returns the candidates whose status or vacancy did not match anything remote.
func Unresolved(candidates []*Candidate) []*Candidate {
	var result []*Candidate
	for _, c := range candidates {
		if c.StatusID == nil || c.VacancyID == nil {
			result = append(result, c)
		}
	}

	return result
}

// ReportByPosition groups candidates by position with their resolution results.
func ReportByPosition(candidates []*Candidate) map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, c := range candidates {
		report[c.Position] = append(report[c.Position], map[string]string{
			"name":       c.FullName(),
			"status":     c.Status,
			"status_id":  idOrUnresolved(c.StatusID),
			"vacancy_id": idOrUnresolved(c.VacancyID),
		})
	}

	return report
}

func idOrUnresolved(id *int) string {
	if id == nil {
		return unresolved
	}

	return strconv.Itoa(*id)
}
