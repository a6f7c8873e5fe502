package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Margay/internal/apperr"
	"github.com/lshigami/Margay/internal/dto"
)

// WriteError maps workflow errors onto HTTP responses. Conflicts are 409 and
// carry the holding moderator when known; precondition failures split into 403
// (authorization) and 400 (state); anything unrecognized is a 500.
func WriteError(ctx *gin.Context, err error) {
	var claimed *apperr.AlreadyClaimedError
	if errors.As(err, &claimed) {
		resp := dto.ErrorResponse{Message: claimed.Error()}
		if claimed.ModeratorID != 0 {
			modID := claimed.ModeratorID
			resp.ClaimedBy = &modID
		}
		ctx.JSON(http.StatusConflict, resp)
		return
	}

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, apperr.ErrPaperFinalized),
		errors.Is(err, apperr.ErrAlreadyResolved):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, apperr.ErrNotAuthor),
		errors.Is(err, apperr.ErrNotOwner),
		errors.Is(err, apperr.ErrNotClaimedByModerator),
		errors.Is(err, apperr.ErrPaperNotClaimedByModerator),
		errors.Is(err, apperr.ErrDeleteForbidden):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, apperr.ErrNotDraft),
		errors.Is(err, apperr.ErrNotSubmitted),
		errors.Is(err, apperr.ErrEmptyPaper),
		errors.Is(err, apperr.ErrMissingComments):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal error", Details: []string{err.Error()}})
	}
}

// UintParam parses a path parameter as uint, writing a 400 on failure.
func UintParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

// UintQuery parses a required query parameter as a positive uint, writing a
// 400 on failure.
func UintQuery(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Query(name), 10, 32)
	if err != nil || val == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "missing or invalid " + name + " query parameter"})
		return 0, false
	}
	return uint(val), true
}

// ActorID reads the acting user's id from the query string. The identity
// provider in front of this service is expected to inject it; until then it
// arrives the same way user ids do elsewhere in the API.
func ActorID(ctx *gin.Context, name string) (uint, bool) {
	return UintQuery(ctx, name)
}
