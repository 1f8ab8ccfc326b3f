package linku

import "fmt"

const maxExcerptLen = 120

// FetchError reports a failed document download.
type FetchError struct {
	URL        string
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	case e.Message != "":
		return fmt.Sprintf("fetching %s: api error (status %d): %s", e.URL, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.StatusCode)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func excerpt(data []byte) string {
	if len(data) <= maxExcerptLen {
		return string(data)
	}
	return string(data[:maxExcerptLen]) + "..."
}
