package tweets

import "fmt"

// InvalidInputError reports a rejected user input (empty handle, or an end
// date before the start date). Nothing is fetched or filtered when raised.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// RetrievalError wraps an archive client failure
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("archive retrieval failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// SchemaError reports a parsed record missing a required field. This is a
// hard stop: a partially built table is never returned.
type SchemaError struct {
	Row   int
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("record %d missing required field %q", e.Row, e.Field)
}
