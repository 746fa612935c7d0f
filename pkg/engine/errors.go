package engine

// ParseError reports that a script failed to compile. No statement has
// executed when it is returned.
type ParseError struct {
	Message string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return e.Message
}

// RuntimeError reports that a script compiled but failed during evaluation.
// Output emitted before the failure is preserved by the caller.
type RuntimeError struct {
	Message string
}

// Error implements the error interface
func (e *RuntimeError) Error() string {
	return e.Message
}
