package huntflow

import (
	"context"
	"fmt"
)

type Vacancy struct {
	ID       int    `json:"id"`
	Position string `json:"position"`
	Company  string `json:"company"`
	State    string `json:"state"`
	Hidden   bool   `json:"hidden"`
}

// Status is a stage of the recruitment pipeline.
type Status struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Order int    `json:"order"`
}

type ApplicantSource struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Label implements the lookup contract used by id resolution.
func (v *Vacancy) Label() string { return v.Position }

func (v *Vacancy) Key() int { return v.ID }

func (s *Status) Label() string { return s.Name }

func (s *Status) Key() int { return s.ID }

// Vacancies returns the vacancies of the account, following pages.
func (c *Client) Vacancies(ctx context.Context) ([]*Vacancy, error) {
	url, err := c.accountURL("/vacancies")
	if err != nil {
		return nil, err
	}

	items, err := c.GetItems(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	var vacancies []*Vacancy
	if err := decodeItems(items, &vacancies); err != nil {
		return nil, fmt.Errorf("decoding vacancies: %w", err)
	}

	return vacancies, nil
}

func (c *Client) Statuses(ctx context.Context) ([]*Status, error) {
	url, err := c.accountURL("/vacancy/statuses")
	if err != nil {
		return nil, err
	}

	items, err := c.GetItems(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	var statuses []*Status
	if err := decodeItems(items, &statuses); err != nil {
		return nil, fmt.Errorf("decoding statuses: %w", err)
	}

	return statuses, nil
}

func (c *Client) ApplicantSources(ctx context.Context) ([]*ApplicantSource, error) {
	url, err := c.accountURL("/applicant/sources")
	if err != nil {
		return nil, err
	}

	items, err := c.GetItems(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	var sources []*ApplicantSource
	if err := decodeItems(items, &sources); err != nil {
		return nil, fmt.Errorf("decoding applicant sources: %w", err)
	}

	return sources, nil
}

// Quota is a hiring plan of a vacancy.
type Quota struct {
	ID               int     `json:"id"`
	VacancyFrame     int     `json:"vacancy_frame"`
	VacancyRequest   *int    `json:"vacancy_request"`
	ApplicantsToHire int     `json:"applicants_to_hire"`
	AlreadyHired     int     `json:"already_hired"`
	Deadline         *string `json:"deadline"`
	Closed           *string `json:"closed"`
}

// VacancyQuotas returns the quotas of a vacancy keyed the way the API keys them.
func (c *Client) VacancyQuotas(ctx context.Context, vacancyID int) (map[string]*Quota, error) {
	url, err := c.accountURL("/vacancy/%d/quotas", vacancyID)
	if err != nil {
		return nil, err
	}

	quotas := make(map[string]*Quota)
	if err := c.getJSON(ctx, url, nil, &quotas); err != nil {
		return nil, err
	}

	return quotas, nil
}
