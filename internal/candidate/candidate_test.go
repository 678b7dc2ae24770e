package candidate

import (
	"errors"
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestSplitFullName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		last   string
		first  string
		middle string
		err    error
	}{
		{name: "two parts", input: "Smith John", last: "Smith", first: "John"},
		{name: "three parts", input: "Smith John Paul", last: "Smith", first: "John", middle: "Paul"},
		{name: "extra whitespace", input: "  Smith \t John  Paul ", last: "Smith", first: "John", middle: "Paul"},
		{name: "tokens past the third are dropped", input: "Smith John Paul Junior", last: "Smith", first: "John", middle: "Paul"},
		{name: "cyrillic", input: "Иванов Иван Иванович", last: "Иванов", first: "Иван", middle: "Иванович"},
		{name: "single token", input: "Smith", err: ErrIncompleteName},
		{name: "empty", input: "   ", err: ErrMissingName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last, first, middle, err := SplitFullName(tt.input)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected %v, got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if last != tt.last || first != tt.first || middle != tt.middle {
				t.Fatalf("got %q/%q/%q, want %q/%q/%q", last, first, middle, tt.last, tt.first, tt.middle)
			}
		})
	}
}

func TestSplitFullNameComposesDecomposedInput(t *testing.T) {
	decomposed := norm.NFD.String("Йорданов Йордан")

	last, _, _, err := SplitFullName(decomposed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last != "Йорданов" {
		t.Fatalf("expected composed last name, got %q", last)
	}
}

func TestNew(t *testing.T) {
	salary := 1500.0
	c, err := New(" Engineer ", "Smith John", &salary, " call after 6 ", " New ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Position != "Engineer" || c.Comment != "call after 6" || c.Status != "New" {
		t.Fatalf("unexpected candidate: %+v", c)
	}
	if c.StatusID != nil || c.VacancyID != nil || c.ApplicantID != nil {
		t.Fatalf("ids must be unset after construction")
	}
	if c.MiddleName != "" {
		t.Fatalf("expected absent middle name, got %q", c.MiddleName)
	}

	if _, err := New("", "Smith John", nil, "", ""); !errors.Is(err, ErrMissingPosition) {
		t.Fatalf("expected ErrMissingPosition, got %v", err)
	}
	if _, err := New("Engineer", "", nil, "", ""); !errors.Is(err, ErrMissingName) {
		t.Fatalf("expected ErrMissingName, got %v", err)
	}
}

func TestFullName(t *testing.T) {
	c := &Candidate{LastName: "Smith", FirstName: "John"}
	if c.FullName() != "Smith John" {
		t.Fatalf("unexpected full name %q", c.FullName())
	}

	c.MiddleName = "Paul"
	if c.FullName() != "Smith John Paul" {
		t.Fatalf("unexpected full name %q", c.FullName())
	}
}
