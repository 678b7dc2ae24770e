package huntflow

import (
	"context"
	"net/url"
	"strconv"
)

const authTypeNative = "NATIVE"

// ApplicantRequest is the body of POST /account/{id}/applicants.
// Pointer fields are sent as null when unset.
type ApplicantRequest struct {
	LastName      string               `json:"last_name"`
	FirstName     string               `json:"first_name"`
	MiddleName    *string              `json:"middle_name"`
	Phone         *string              `json:"phone"`
	Email         *string              `json:"email"`
	Position      string               `json:"position"`
	Company       *string              `json:"company"`
	Money         *float64             `json:"money"`
	BirthdayDay   *int                 `json:"birthday_day"`
	BirthdayMonth *int                 `json:"birthday_month"`
	BirthdayYear  *int                 `json:"birthday_year"`
	Photo         *int                 `json:"photo"`
	Externals     []*ApplicantExternal `json:"externals"`
}

// ApplicantExternal is a resume attached to a new applicant.
type ApplicantExternal struct {
	Data          ExternalData `json:"data"`
	AuthType      string       `json:"auth_type"`
	Files         []FileRef    `json:"files"`
	AccountSource *int         `json:"account_source"`
}

type ExternalData struct {
	Body *string `json:"body"`
}

type FileRef struct {
	ID *int `json:"id"`
}

// VacancyLinkRequest is the body of POST /account/{id}/applicants/{applicant}/vacancy.
type VacancyLinkRequest struct {
	Vacancy         *int      `json:"vacancy"`
	Status          *int      `json:"status"`
	Comment         *string   `json:"comment"`
	Files           []FileRef `json:"files"`
	RejectionReason *int      `json:"rejection_reason"`
}

type Applicant struct {
	ID         int    `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	MiddleName string `json:"middle_name"`
	Position   string `json:"position"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

type VacancyLink struct {
	ID      int `json:"id"`
	Vacancy int `json:"vacancy"`
	Status  int `json:"status"`
}

type ApplicantPage struct {
	Items []*Applicant `json:"items"`
	Page  int          `json:"page"`
	Count int          `json:"count"`
	Total int          `json:"total"`
}

// NewResumeExternal builds the externals entry carrying the parsed resume text.
func NewResumeExternal(text *string, fileID *int) *ApplicantExternal {
	return &ApplicantExternal{
		Data:     ExternalData{Body: text},
		AuthType: authTypeNative,
		Files:    []FileRef{{ID: fileID}},
	}
}

func (c *Client) CreateApplicant(ctx context.Context, payload *ApplicantRequest) (*Applicant, error) {
	url, err := c.accountURL("/applicants")
	if err != nil {
		return nil, err
	}

	var applicant Applicant
	if err := c.postJSON(ctx, url, payload, &applicant); err != nil {
		return nil, err
	}

	return &applicant, nil
}

func (c *Client) AttachToVacancy(ctx context.Context, applicantID int, payload *VacancyLinkRequest) (*VacancyLink, error) {
	url, err := c.accountURL("/applicants/%d/vacancy", applicantID)
	if err != nil {
		return nil, err
	}

	var link VacancyLink
	if err := c.postJSON(ctx, url, payload, &link); err != nil {
		return nil, err
	}

	return &link, nil
}

// Applicants returns a single page of the account applicants.
func (c *Client) Applicants(ctx context.Context, page int) (*ApplicantPage, error) {
	apiURL, err := c.accountURL("/applicants")
	if err != nil {
		return nil, err
	}

	var q url.Values
	if page > 0 {
		q = url.Values{}
		q.Set("page", strconv.Itoa(page))
	}

	var result ApplicantPage
	if err := c.getJSON(ctx, apiURL, q, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
