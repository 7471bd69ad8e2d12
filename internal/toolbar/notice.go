package toolbar

import (
	"context"
	"errors"
	"net/http"

	"github.com/JaimeStill/storefront/pkg/client"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

// Kind classifies a failure for display.
type Kind string

const (
	KindNone       Kind = ""
	KindTransport  Kind = "transport"
	KindBusiness   Kind = "business"
	KindValidation Kind = "validation"
)

// Notice is a transient message such as a toast.
type Notice struct {
	Level   Level
	Kind    Kind
	Message string
}

type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) {
	f(n)
}

// Classify maps an error onto the failure taxonomy. Selection rule
// violations and rejected input are validation failures, other API
// refusals are business failures, and everything else (unreachable
// server, malformed responses, timeouts) is transport.
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}

	if errors.Is(err, ErrSelectOne) || errors.Is(err, ErrSelectNone) {
		return KindValidation
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusRequestEntityTooLarge:
			return KindValidation
		default:
			return KindBusiness
		}
	}

	return KindTransport
}

// NoticeFor builds the error notice for err.
func NoticeFor(err error) Notice {
	msg := err.Error()
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		msg = "the server did not respond in time"
	case errors.Is(err, client.ErrInvalidResponse):
		msg = "the server returned an unexpected response"
	}
	return Notice{Level: LevelError, Kind: Classify(err), Message: msg}
}
