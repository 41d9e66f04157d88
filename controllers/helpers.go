package controllers

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/DivyaPradhan23/grocery-backend/middleware"
	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/services"
)

var registerFieldNames sync.Once

// UseJSONFieldNames makes binding errors name fields by their json tag so
// clients see "product_id" rather than "ProductID".
func UseJSONFieldNames() {
	registerFieldNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
}

var statusByKind = map[services.ErrorKind]int{
	services.KindValidation:   http.StatusBadRequest,
	services.KindBadRequest:   http.StatusBadRequest,
	services.KindUnauthorized: http.StatusUnauthorized,
	services.KindForbidden:    http.StatusForbidden,
	services.KindNotFound:     http.StatusNotFound,
	services.KindConflict:     http.StatusConflict,
}

func respondError(c *gin.Context, err error) {
	if appErr, ok := services.AsAppError(err); ok {
		status, known := statusByKind[appErr.Kind]
		if known {
			c.JSON(status, models.ErrorResponse{
				Success: false,
				Message: appErr.Message,
				Errors:  appErr.Fields,
			})
			return
		}
	}

	log.WithError(err).
		WithField("request_id", c.GetString(middleware.ContextRequestID)).
		WithField("path", c.Request.URL.Path).
		Error("unhandled error")
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Success: false,
		Message: "Internal server error",
	})
}

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// bindJSON decodes the body into obj and writes a 400 on failure. Binding
// rule violations are reported per field.
func bindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := services.FieldErrors{}
		for _, fe := range verrs {
			fields.Add(fe.Field(), fieldMessage(fe))
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  fields,
		})
		return false
	}

	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Message: "Invalid request",
		Error:   err.Error(),
	})
	return false
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "min":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	default:
		return fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}

func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Success: false,
			Message: "Not found.",
		})
		return 0, false
	}
	return id, true
}

func currentUserID(c *gin.Context) int {
	return c.GetInt(middleware.ContextUserID)
}
