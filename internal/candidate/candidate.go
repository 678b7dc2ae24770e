package candidate

import (
	"errors"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/spigell/hf-importer/internal/huntflow"
)

const maxNameParts = 3

var (
	ErrMissingPosition = errors.New("position is required")
	ErrMissingName     = errors.New("full name is required")
	ErrIncompleteName  = errors.New("full name must contain at least last and first name")
)

// Candidate is one applicant read from the spreadsheet. Ids are nil until
// the corresponding resolution or remote call has filled them.
type Candidate struct {
	Position   string
	LastName   string
	FirstName  string
	MiddleName string
	Salary     *float64
	Comment    string
	Status     string

	StatusID  *int
	VacancyID *int

	ResumeID   *int
	ResumeText string
	PhotoID    *int
	Phones     []string
	Email      string
	Skype      string
	Telegram   string
	Experience []huntflow.Experience
	BirthDay   *int
	BirthMonth *int
	BirthYear  *int

	ApplicantID *int
}

// New builds a candidate from raw spreadsheet values.
func New(position, fullName string, salary *float64, comment, status string) (*Candidate, error) {
	position = strings.TrimSpace(position)
	if position == "" {
		return nil, ErrMissingPosition
	}

	last, first, middle, err := SplitFullName(fullName)
	if err != nil {
		return nil, err
	}

	return &Candidate{
		Position:   position,
		LastName:   last,
		FirstName:  first,
		MiddleName: middle,
		Salary:     salary,
		Comment:    strings.TrimSpace(comment),
		Status:     strings.TrimSpace(status),
	}, nil
}

// SplitFullName maps "Last First [Middle]" onto name parts. Tokens past the
// third are dropped.
func SplitFullName(fullName string) (last, first, middle string, err error) {
	parts := strings.Fields(norm.NFC.String(fullName))
	if len(parts) == 0 {
		return "", "", "", ErrMissingName
	}

	if len(parts) < 2 {
		return "", "", "", ErrIncompleteName
	}

	if len(parts) > maxNameParts {
		parts = parts[:maxNameParts]
	}

	last, first = parts[0], parts[1]
	if len(parts) == maxNameParts {
		middle = parts[2]
	}

	return last, first, middle, nil
}

// FullName returns "Last First Middle" without the absent parts.
func (c *Candidate) FullName() string {
	parts := make([]string, 0, maxNameParts)
	for _, p := range []string{c.LastName, c.FirstName, c.MiddleName} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, " ")
}
