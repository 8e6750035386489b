package llm

import "errors"

var (
	// ErrUnavailable indicates the model service is unreachable or the client
	// could not be initialised.
	ErrUnavailable = errors.New("model service unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("model request timed out")

	// ErrInvalidOutput indicates the response could not be parsed into the
	// expected structured format.
	ErrInvalidOutput = errors.New("invalid model output format")

	// ErrRequestFailed indicates the service answered with an error.
	ErrRequestFailed = errors.New("model request failed")
)

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.Is(err, ErrRequestFailed):
		return "REQUEST_FAILED"
	default:
		return "UNKNOWN"
	}
}
