package huntflow

import "fmt"

// NetworkError describes a failed call to the Huntflow API: either the
// transport failed (Err is set) or the server answered with a non-2xx status.
type NetworkError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	// Body is a truncated copy of the response body.
	Body string
	Err  error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}

	if e.Body != "" {
		return fmt.Sprintf("%s %s: bad status: %s: %s", e.Method, e.URL, e.Status, e.Body)
	}

	return fmt.Sprintf("%s %s: bad status: %s", e.Method, e.URL, e.Status)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
