package errors

/*
* Error codes convey detailed errors internally and to clients. They are
* combined with the appropriate HTTP status code, not a replacement for
* it: there is no code for "not found" because HTTP 404 is sufficient,
* but a cold cache miss needs its own code because it is served with a
* generic HTTP 500.
 */

const (

	// HTTP 400 Bad Request.
	// A filter parameter was not of the expected type.
	UnexpectedType ErrCode = 1
	// A filter parameter was outside the expected range.
	OutOfRange ErrCode = 2

	// HTTP 500 Internal Server Error.
	// The warehouse query failed and no cached value exists to serve
	// in its place.
	ColdMiss ErrCode = 3
	// The warehouse query failed or timed out.
	QueryFailed ErrCode = 4
)

// ErrCode is a numeric API error code
type ErrCode uint8

// APIError implements the Error interface.
type APIError struct {
	Function     string  `json:"-"`
	ErrorCode    ErrCode `json:"errorCode"`
	ErrorMessage string  `json:"errorDetail"`
}

func (e APIError) Error() string {
	return e.ErrorMessage
}

// New returns an APIError for the given function, code and message
func New(function string, errCode ErrCode, errMessage string) error {
	return &APIError{
		Function:     function,
		ErrorCode:    errCode,
		ErrorMessage: errMessage,
	}
}

// IsColdMiss reports whether err is an APIError carrying the ColdMiss
// code
func IsColdMiss(err error) bool {
	e, ok := err.(*APIError)
	return ok && e.ErrorCode == ColdMiss
}
