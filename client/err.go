package client

import (
	"errors"

	"github.com/ezrec/simdesk/translate"
)

var f = translate.From

var (
	ErrIndexMissing = errors.New(f("response has no index"))
)

// ErrStatus is a non-200 reply. Message is the server text, verbatim.
type ErrStatus struct {
	Endpoint string
	Code     int
	Message  string
}

func (err *ErrStatus) Error() string {
	if len(err.Message) == 0 {
		return f("%v: status %d", err.Endpoint, err.Code)
	}
	return err.Message
}

// ErrDecode is a 200 reply whose body could not be decoded.
type ErrDecode struct {
	Endpoint string
	Err      error
}

func (err *ErrDecode) Error() string {
	return f("%v: bad response: %v", err.Endpoint, err.Err)
}

func (err *ErrDecode) Unwrap() error {
	return err.Err
}
