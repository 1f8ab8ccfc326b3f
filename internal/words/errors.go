package words

import "fmt"

// maxExcerptLen bounds how much of a record is echoed back in errors.
const maxExcerptLen = 200

// NotFoundError reports that a document has no record for a word.
type NotFoundError struct {
	Word string
	Lang string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no definition found for %q with language code %q", e.Word, e.Lang)
}

// DecodeError reports a record that could not be interpreted as a word.
type DecodeError struct {
	Word string
	Raw  string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to get api result for %q: %v (%s)", e.Word, e.Err, e.Raw)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func excerpt(data []byte) string {
	if len(data) <= maxExcerptLen {
		return string(data)
	}
	return string(data[:maxExcerptLen]) + "..."
}
