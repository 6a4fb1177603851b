package errors

import (
	"errors"
	"fmt"
)

// UpstreamFailure is implemented by errors raised while talking to the
// commerce API so diagnostics can be logged without importing that package.
type UpstreamFailure interface {
	UpstreamOperation() string
	UpstreamStatus() int
	UpstreamBody() string
}

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	UpstreamOperation string `json:"upstream_operation,omitempty"`
	UpstreamStatus    int    `json:"upstream_status,omitempty"`
	UpstreamBody      string `json:"upstream_body,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var upstreamErr UpstreamFailure
	if errors.As(err, &upstreamErr) {
		d.UpstreamOperation = upstreamErr.UpstreamOperation()
		d.UpstreamStatus = upstreamErr.UpstreamStatus()
		d.UpstreamBody = upstreamErr.UpstreamBody()
	}

	return d
}
