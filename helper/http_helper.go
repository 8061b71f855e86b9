package helper

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"conduit/models"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/rs/zerolog"
	"gopkg.in/go-playground/validator.v9"
	en_translations "gopkg.in/go-playground/validator.v9/translations/en"
)

// HTTPHelper ...
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
	Log        zerolog.Logger
}

// NewHTTPHelper builds a helper whose validation messages are English and
// name fields by their JSON keys.
func NewHTTPHelper(log zerolog.Logger) *HTTPHelper {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, found := uni.GetTranslator("en")
	if !found {
		log.Warn().Msg("English translator not found, using fallback")
	}
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		log.Error().Err(err).Msg("Failed to register validation translations")
	}

	return &HTTPHelper{
		Validate:   validate,
		Translator: trans,
		Log:        log,
	}
}

// GetStatusCode ...
func (u *HTTPHelper) GetStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// BindJSON decodes the request body into req and runs the struct rules.
// It writes the error response itself and reports whether the handler
// may continue.
func (u *HTTPHelper) BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		u.SendBadRequest(c, "malformed JSON body")
		return false
	}

	if err := u.Validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			u.SendValidationError(c, validationErrors)
			return false
		}
		u.SendBadRequest(c, err.Error())
		return false
	}
	return true
}

// SendValidationError ...
// Send validation error response to consumers.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	errorResponse := map[string][]string{}
	errorTranslation := validationErrors.Translate(u.Translator)
	for _, err := range validationErrors {
		errKey := err.Field()
		errorResponse[errKey] = append(errorResponse[errKey], errorTranslation[err.Namespace()])
	}

	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"errors": errorResponse})
}

// SendError ...
// Send the response matching a service error. Unknown errors are logged
// and reported without detail.
func (u *HTTPHelper) SendError(c *gin.Context, err error) {
	status := u.GetStatusCode(err)

	var appErr *models.AppError
	if status == http.StatusInternalServerError || !errors.As(err, &appErr) {
		u.Log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Request failed")
		u.sendErrors(c, http.StatusInternalServerError, "server", "internal server error")
		return
	}

	u.sendErrors(c, status, appErr.Field, appErr.Message)
}

// SendBadRequest ...
// Send bad request response to consumers.
func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string) {
	u.sendErrors(c, http.StatusBadRequest, "body", message)
}

// SendUnauthorizedError ...
// Send unauthorized response to consumers.
func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message string) {
	u.sendErrors(c, http.StatusUnauthorized, "credentials", message)
}

// SendNotFoundError ...
// Send not found response to consumers.
func (u *HTTPHelper) SendNotFoundError(c *gin.Context, resource, message string) {
	u.sendErrors(c, http.StatusNotFound, resource, message)
}

// SendSuccess ...
// Send success response to consumers.
func (u *HTTPHelper) SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func (u *HTTPHelper) sendErrors(c *gin.Context, status int, field, message string) {
	if field == "" {
		field = "body"
	}
	c.AbortWithStatusJSON(status, gin.H{
		"errors": map[string][]string{field: {message}},
	})
}
