package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/crayola-eater/code-and-conquer/internal/model"
	"github.com/crayola-eater/code-and-conquer/internal/storage"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidCoordinates = "INVALID_COORDINATES"
	CodeInvalidRole        = "INVALID_ROLE"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeTeamNotFound       = "TEAM_NOT_FOUND"
	CodeSquareNotFound     = "SQUARE_NOT_FOUND"
	CodeInvalidGameStatus  = "INVALID_GAME_STATUS"
	CodeGameStarted        = "GAME_ALREADY_STARTED"
	CodeDisplayNameTaken   = "DISPLAY_NAME_TAKEN"
	CodeNotHost            = "NOT_HOST"
	CodeRoleNotAllowed     = "ROLE_NOT_ALLOWED"
	CodeRoleAlreadyUsed    = "ROLE_ALREADY_USED"
	CodeNoRequestsLeft     = "NO_REQUESTS_LEFT"
	CodeAttackFailed       = "ATTACK_FAILED"
	CodeDefendFailed       = "DEFEND_FAILED"
	CodeConflict           = "CONFLICT"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for pre-built HTTP errors
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Parameterized model errors carry detail in their messages
	var invalidGame *model.InvalidGameIDError
	if errors.As(err, &invalidGame) {
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, invalidGame.Error()}}
	}
	var invalidTeam *model.InvalidTeamIDError
	if errors.As(err, &invalidTeam) {
		return &httpError{http.StatusNotFound, APIError{CodeTeamNotFound, invalidTeam.Error()}}
	}
	var invalidCoords *model.InvalidCoordinatesError
	if errors.As(err, &invalidCoords) {
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCoordinates, invalidCoords.Error()}}
	}
	var invalidStatus *model.InvalidGameStatusError
	if errors.As(err, &invalidStatus) {
		return &httpError{http.StatusConflict, APIError{CodeInvalidGameStatus, invalidStatus.Error()}}
	}
	var onlyHost *model.OnlyHostCanStartError
	if errors.As(err, &onlyHost) {
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, onlyHost.Error()}}
	}
	var onlyMinelayers *model.OnlyMinelayersCanPlaceMinesError
	if errors.As(err, &onlyMinelayers) {
		return &httpError{http.StatusForbidden, APIError{CodeRoleNotAllowed, onlyMinelayers.Error()}}
	}

	// Sentinel model errors
	switch {
	case errors.Is(err, model.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid team id or team key"}}
	case errors.Is(err, model.ErrNoMoreRequestsLeft):
		return &httpError{http.StatusTooManyRequests, APIError{CodeNoRequestsLeft, "No requests left"}}
	case errors.Is(err, model.ErrInvalidTeamRole):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRole, "Invalid team role"}}
	case errors.Is(err, model.ErrRoleAlreadyUsed):
		return &httpError{http.StatusConflict, APIError{CodeRoleAlreadyUsed, "Role has already been used"}}
	case errors.Is(err, model.ErrTeamDisplayNameTaken):
		return &httpError{http.StatusConflict, APIError{CodeDisplayNameTaken, "Display name already taken in this game"}}
	case errors.Is(err, model.ErrCannotJoinAfterHostHasStarted):
		return &httpError{http.StatusConflict, APIError{CodeGameStarted, "Cannot join after the host has started the game"}}
	case errors.Is(err, model.ErrFailedToAttackSquare):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeAttackFailed, "Failed to attack square"}}
	case errors.Is(err, model.ErrFailedToDefendSquare):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeDefendFailed, "Failed to defend square"}}
	case errors.Is(err, model.ErrFailedToQueryGridSquare):
		return &httpError{http.StatusNotFound, APIError{CodeSquareNotFound, "Failed to query grid square"}}
	case errors.Is(err, storage.ErrTransactionConflict):
		return &httpError{http.StatusConflict, APIError{CodeConflict, "Concurrent update conflict, retry the request"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
