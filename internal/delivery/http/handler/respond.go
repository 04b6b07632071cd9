package handler

import (
	"errors"
	"net/http"

	domainFavorite "hamrah-bazaar/internal/domain/favorite"
	domainListing "hamrah-bazaar/internal/domain/listing"
	domainMessage "hamrah-bazaar/internal/domain/message"
	domainUser "hamrah-bazaar/internal/domain/user"
	"hamrah-bazaar/internal/logger"
	"hamrah-bazaar/internal/middleware"
	appErrors "hamrah-bazaar/pkg/errors"
	"hamrah-bazaar/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// respondWithError maps domain and application errors onto HTTP statuses.
func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, domainUser.ErrPhoneTaken),
		errors.Is(err, domainUser.ErrEmailTaken),
		errors.Is(err, appErrors.ErrUserAlreadyExists):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, appErrors.ErrInvalidCredentials),
		errors.Is(err, appErrors.ErrInvalidToken),
		errors.Is(err, appErrors.ErrCodeExpired),
		errors.Is(err, appErrors.ErrCodeInvalid),
		errors.Is(err, domainUser.ErrTokenInvalid),
		errors.Is(err, domainUser.ErrTokenExpired),
		errors.Is(err, appErrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, appErrors.ErrInsufficientPermissions),
		errors.Is(err, domainListing.ErrNotOwner):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, appErrors.ErrUserNotFound),
		errors.Is(err, domainUser.ErrUserNotFound),
		errors.Is(err, domainListing.ErrListingNotFound),
		errors.Is(err, domainMessage.ErrMessageNotFound),
		errors.Is(err, domainFavorite.ErrFavoriteNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domainMessage.ErrEmptyContent),
		errors.Is(err, domainMessage.ErrSelfMessage):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}

		requestID := middleware.GetRequestID(c)
		logger.Error("Internal server error",
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// currentUserID pulls the authenticated user's ID out of the context set by
// the auth middleware. A missing or malformed value writes the error
// response and reports false.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		utils.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return uuid.Nil, false
	}

	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Invalid user identifier")
		return uuid.Nil, false
	}

	return userUUID, true
}

// currentUserRole returns the role claim set by the auth middleware.
func currentUserRole(c *gin.Context) string {
	if role, exists := c.Get("role"); exists {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}

// pathUUID parses a UUID path parameter, writing the error response on
// malformed input.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
