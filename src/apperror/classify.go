package apperror

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

// UniqueViolation is the PostgreSQL SQLSTATE for a duplicate key.
const UniqueViolation = "23505"

// Public messages. Internal causes never appear in them.
const (
	MsgAccountExists      = "Account already exists"
	MsgCannotUpdate       = "Cannot update data"
	MsgInternal           = "Internal server error"
	MsgWrongCredentials   = "Wrong E-mail/Password combination"
	MsgRouteNotFound      = "Route not found"
	MsgExternalClientFail = "External client error"
	MsgExternalServerFail = "External server error"
)

// Classify maps err to the HTTP status and message returned to the client.
// The raw error is logged before the public message is chosen. Rules are
// evaluated in order and the first match wins.
func Classify(err error) (int, string) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		log.Warn().Err(err).Str("kind", KindUnknown.String()).Msg("unclassified error")
		return http.StatusNotFound, MsgRouteNotFound
	}

	event := log.Warn()
	if appErr.Kind == KindUpstreamTransportFailure || appErr.Kind == KindStorageFailure {
		event = log.Error()
	}
	event.
		Str("kind", appErr.Kind.String()).
		Str("detail", appErr.Error())
	if appErr.Err != nil {
		event.AnErr("cause", appErr.Err)
	}
	if appErr.Kind == KindInvalidCredentials {
		event.Str("credential_cause", appErr.Credential.String())
	}
	event.Msg("request failed")

	switch appErr.Kind {
	case KindInvalidInput, KindMissingParameter, KindNotFound:
		return http.StatusUnprocessableEntity, appErr.Error()
	case KindUpstreamClientFailure:
		return http.StatusUnprocessableEntity, MsgExternalClientFail
	case KindUpstreamServerFailure:
		return http.StatusUnprocessableEntity, MsgExternalServerFail
	case KindStorageConflict:
		return http.StatusUnprocessableEntity, MsgAccountExists
	case KindStorageFailure:
		if DatabaseCode(appErr.Err) == UniqueViolation {
			return http.StatusUnprocessableEntity, MsgAccountExists
		}
		return http.StatusUnprocessableEntity, MsgCannotUpdate
	case KindCorsForbidden:
		return http.StatusForbidden, appErr.Detail
	case KindMalformedBody:
		return http.StatusUnprocessableEntity, appErr.Detail
	case KindUpstreamTransportFailure:
		return http.StatusInternalServerError, MsgInternal
	case KindInvalidCredentials:
		return http.StatusUnauthorized, MsgWrongCredentials
	default:
		return http.StatusNotFound, MsgRouteNotFound
	}
}

// DatabaseCode returns the SQLSTATE of the PostgreSQL error nested in err,
// or "" when there is none.
func DatabaseCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
