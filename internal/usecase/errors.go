package usecase

import (
	"errors"
	"fmt"

	"pilot-career-service/internal/domain/entity"
	"pilot-career-service/internal/domain/repository"
)

// ErrorKind classifies schedule generation failures
type ErrorKind string

const (
	KindInvalidRequest     ErrorKind = "invalid_request"
	KindUnknownAirport     ErrorKind = "unknown_airport"
	KindNoRoutesAvailable  ErrorKind = "no_routes_available"
	KindScheduleInfeasible ErrorKind = "schedule_infeasible"
)

var (
	ErrInvalidRequest     = errors.New("invalid schedule request")
	ErrUnknownAirport     = repository.ErrUnknownAirport
	ErrNoRoutesAvailable  = errors.New("no routes available")
	ErrScheduleInfeasible = errors.New("schedule infeasible")
)

// GenerationError is the typed failure of a generation run. Legs holds
// whatever was flown before the run stopped; it is never a valid schedule.
type GenerationError struct {
	Kind    ErrorKind
	Airport string
	Detail  string
	Legs    []entity.GeneratedFlight
}

func (e *GenerationError) Error() string {
	msg := e.Unwrap().Error()
	if e.Airport != "" {
		msg = fmt.Sprintf("%s at %s", msg, e.Airport)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	return msg
}

// Unwrap exposes the sentinel for the kind so errors.Is works
func (e *GenerationError) Unwrap() error {
	switch e.Kind {
	case KindInvalidRequest:
		return ErrInvalidRequest
	case KindUnknownAirport:
		return ErrUnknownAirport
	case KindNoRoutesAvailable:
		return ErrNoRoutesAvailable
	default:
		return ErrScheduleInfeasible
	}
}

func invalidRequest(format string, args ...interface{}) *GenerationError {
	return &GenerationError{Kind: KindInvalidRequest, Detail: fmt.Sprintf(format, args...)}
}

// KindOf reports the generation failure kind of err, or "" if err is not a
// generation failure
func KindOf(err error) ErrorKind {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return KindInvalidRequest
	case errors.Is(err, ErrUnknownAirport):
		return KindUnknownAirport
	case errors.Is(err, ErrNoRoutesAvailable):
		return KindNoRoutesAvailable
	case errors.Is(err, ErrScheduleInfeasible):
		return KindScheduleInfeasible
	}
	return ""
}
