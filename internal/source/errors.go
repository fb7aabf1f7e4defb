package source

import "errors"

var (
	// ErrUnavailable indicates the data location could not be reached or opened.
	ErrUnavailable = errors.New("record source unavailable")

	// ErrTimeout indicates the fetch exceeded the configured timeout.
	ErrTimeout = errors.New("record fetch timed out")

	// ErrBadStatus indicates a non-2xx HTTP response.
	ErrBadStatus = errors.New("record source returned bad status")

	// ErrDecode indicates the payload was not a JSON array of objects, or a
	// CSV export without the expected columns.
	ErrDecode = errors.New("record payload could not be decoded")

	// ErrUnsupported indicates a location no source can serve.
	ErrUnsupported = errors.New("unsupported record location")
)
