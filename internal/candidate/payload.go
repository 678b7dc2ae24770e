package candidate

import "github.com/spigell/hf-importer/internal/huntflow"

// ApplicantPayload maps the candidate onto the create-applicant request.
func (c *Candidate) ApplicantPayload() *huntflow.ApplicantRequest {
	var phone *string
	if len(c.Phones) > 0 {
		phone = optionalString(c.Phones[0])
	}

	return &huntflow.ApplicantRequest{
		LastName:      c.LastName,
		FirstName:     c.FirstName,
		MiddleName:    optionalString(c.MiddleName),
		Phone:         phone,
		Email:         optionalString(c.Email),
		Position:      c.Position,
		Money:         c.Salary,
		BirthdayDay:   c.BirthDay,
		BirthdayMonth: c.BirthMonth,
		BirthdayYear:  c.BirthYear,
		Photo:         c.PhotoID,
		Externals: []*huntflow.ApplicantExternal{
			huntflow.NewResumeExternal(optionalString(c.ResumeText), c.ResumeID),
		},
	}
}

// VacancyLinkPayload maps the candidate onto the attach-to-vacancy request.
// Unresolved vacancy or status ids are sent as null.
func (c *Candidate) VacancyLinkPayload() *huntflow.VacancyLinkRequest {
	return &huntflow.VacancyLinkRequest{
		Vacancy: c.VacancyID,
		Status:  c.StatusID,
		Comment: optionalString(c.Comment),
		Files:   []huntflow.FileRef{{ID: c.ResumeID}},
	}
}
