package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/CroSSer23/spa-procurement/internal/apierror"
	"github.com/CroSSer23/spa-procurement/internal/middleware"
	"github.com/CroSSer23/spa-procurement/internal/policy"
	"github.com/CroSSer23/spa-procurement/internal/service"
)

var validate = validator.New()

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps the service error taxonomy to HTTP statuses in one place.
// Anything unrecognized is a 500 with a safe message; the real error goes to
// the error-handler middleware for logging.
func respondError(c *gin.Context, err error) {
	var (
		validation *service.ValidationError
		notFound   *service.NotFoundError
		forbidden  *service.AuthorizationError
		conflict   *service.ConflictError
		rule       *service.BusinessRuleError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, apierror.New(validation.Error()))
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, apierror.New(notFound.Error()))
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, apierror.New(forbidden.Error()))
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, apierror.New(conflict.Error()))
	case errors.As(err, &rule):
		c.JSON(http.StatusBadRequest, apierror.New(rule.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
	}
}

// resolveActor turns the JWT claims into a policy actor with fresh role and
// location assignments. Tokens outliving a role change lose their old powers
// as soon as the database says otherwise.
func resolveActor(c *gin.Context, auth service.AuthService) (policy.Actor, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Authentication required"))
		return policy.Actor{}, false
	}
	uid, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Malformed token"))
		return policy.Actor{}, false
	}
	actor, err := auth.ResolveActor(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("User not found or inactive"))
		return policy.Actor{}, false
	}
	return actor, true
}

// parseID parses the :id route parameter, writing a 400 on failure.
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return uuid.Nil, false
	}
	return id, true
}
