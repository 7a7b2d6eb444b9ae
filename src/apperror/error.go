package apperror

import (
	"errors"
	"fmt"
)

// Kind identifies the cause of a failure. The set is closed: every error that
// leaves a service or repository is an *Error carrying one of these kinds.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindMissingParameter
	KindNotFound
	KindStorageConflict
	KindStorageFailure
	KindUpstreamClientFailure
	KindUpstreamServerFailure
	KindUpstreamTransportFailure
	KindInvalidCredentials

	// Raised by the transport layer rather than by services.
	KindCorsForbidden
	KindMalformedBody
)

var kindNames = map[Kind]string{
	KindUnknown:                  "unknown",
	KindInvalidInput:             "invalid_input",
	KindMissingParameter:         "missing_parameter",
	KindNotFound:                 "not_found",
	KindStorageConflict:          "storage_conflict",
	KindStorageFailure:           "storage_failure",
	KindUpstreamClientFailure:    "upstream_client_failure",
	KindUpstreamServerFailure:    "upstream_server_failure",
	KindUpstreamTransportFailure: "upstream_transport_failure",
	KindInvalidCredentials:       "invalid_credentials",
	KindCorsForbidden:            "cors_forbidden",
	KindMalformedBody:            "malformed_body",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// CredentialCause tells apart the two InvalidCredentials causes. It is logged
// only; both causes render identically.
type CredentialCause int

const (
	CauseWrongPassword CredentialCause = iota + 1
	CauseHashingFailure
)

func (c CredentialCause) String() string {
	switch c {
	case CauseWrongPassword:
		return "wrong_password"
	case CauseHashingFailure:
		return "hashing_failure"
	default:
		return "unspecified"
	}
}

// Error is the single failure value produced by the application.
type Error struct {
	Kind Kind
	// Err is the nested cause (database error, hashing error, transport
	// error). Never rendered to clients.
	Err error
	// Detail is a kind-specific message: the parse error text for
	// InvalidInput, the transport message for CorsForbidden and
	// MalformedBody.
	Detail string
	// Resource names what was missing for NotFound.
	Resource string
	// Status and Body describe a failed upstream response.
	Status int
	Body   string
	// Credential is set for InvalidCredentials.
	Credential CredentialCause
}

// Error returns the diagnostic description used in logs.
func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidInput:
		return "Cannot parse parameter: " + e.Detail
	case KindMissingParameter:
		return "Missing parameter"
	case KindNotFound:
		return e.resource() + " not found"
	case KindStorageConflict:
		return withCause("Storage conflict", e.Err)
	case KindStorageFailure:
		return withCause("Cannot update, invalid data", e.Err)
	case KindUpstreamClientFailure:
		return fmt.Sprintf("External client error: Status: %d, Message: %s", e.Status, e.Body)
	case KindUpstreamServerFailure:
		return fmt.Sprintf("External server error: Status: %d, Message: %s", e.Status, e.Body)
	case KindUpstreamTransportFailure:
		return withCause("External API error", e.Err)
	case KindInvalidCredentials:
		if e.Credential == CauseHashingFailure {
			return withCause("Argon library error", e.Err)
		}
		return "Wrong password"
	case KindCorsForbidden, KindMalformedBody:
		return e.Detail
	default:
		return withCause("unknown error", e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) resource() string {
	if e.Resource == "" {
		return "Question"
	}
	return e.Resource
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return msg + ": " + cause.Error()
}

// KindOf reports the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// InvalidInput reports a parameter that could not be parsed.
func InvalidInput(err error) *Error {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &Error{Kind: KindInvalidInput, Err: err, Detail: detail}
}

func MissingParameter() *Error {
	return &Error{Kind: KindMissingParameter}
}

// NotFound reports an absent resource, e.g. NotFound("Question").
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Resource: resource}
}

func StorageConflict(err error) *Error {
	return &Error{Kind: KindStorageConflict, Err: err}
}

// Storage wraps any persistence error. The classifier inspects the nested
// database error for its SQLSTATE code.
func Storage(err error) *Error {
	return &Error{Kind: KindStorageFailure, Err: err}
}

func UpstreamClient(status int, body string) *Error {
	return &Error{Kind: KindUpstreamClientFailure, Status: status, Body: body}
}

func UpstreamServer(status int, body string) *Error {
	return &Error{Kind: KindUpstreamServerFailure, Status: status, Body: body}
}

func UpstreamTransport(err error) *Error {
	return &Error{Kind: KindUpstreamTransportFailure, Err: err}
}

func WrongPassword() *Error {
	return &Error{Kind: KindInvalidCredentials, Credential: CauseWrongPassword}
}

func HashingFailure(err error) *Error {
	return &Error{Kind: KindInvalidCredentials, Credential: CauseHashingFailure, Err: err}
}

func CorsForbidden(message string) *Error {
	return &Error{Kind: KindCorsForbidden, Detail: message}
}

func MalformedBody(err error) *Error {
	detail := "Request body deserialize error"
	if err != nil {
		detail = "Request body deserialize error: " + err.Error()
	}
	return &Error{Kind: KindMalformedBody, Err: err, Detail: detail}
}
