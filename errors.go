package woff

// All errors are terminal for the current call: there is no retry and no
// partial-result recovery.

// FormatError is returned if the input violates the WOFF specification.
type FormatError struct {
	Stage string // pipeline stage that detected the violation
	Msg   string
}

func (e *FormatError) Error() string {
	return "woff: " + e.Stage + ": " + e.Msg
}

// IOError is returned on file open failure, short or failed reads, and
// write-length mismatches.
type IOError struct {
	Stage string
	Err   error
}

func (e *IOError) Error() string {
	return "woff: " + e.Stage + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// DecompressionError is returned if a compressed table or metadata block is
// not a valid zlib stream.
type DecompressionError struct {
	Tag string // table tag, or the name of the extension block
	Err error
}

func (e *DecompressionError) Error() string {
	return "woff: " + e.Tag + ": " + e.Err.Error()
}

func (e *DecompressionError) Unwrap() error {
	return e.Err
}
