package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerTagNameOnce sync.Once

// useJSONFieldNames makes validator report the json names clients actually send.
func useJSONFieldNames() {
	registerTagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
}

// bindError converts a ShouldBindJSON failure into a 400 response.
func bindError(err error) *HTTPError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		httpErr := NewHTTPError(http.StatusBadRequest, "invalid_request", describeFieldError(first), err)
		httpErr.Field = fieldPath(first)
		return httpErr
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		httpErr := NewHTTPError(http.StatusBadRequest, "invalid_request", fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type.String()), err)
		httpErr.Field = typeErr.Field
		return httpErr
	}
	return NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err)
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldPath(fe))
	default:
		return fmt.Sprintf("%s failed %s validation", fieldPath(fe), fe.Tag())
	}
}

// fieldPath drops the top-level struct name, e.g. "EstimateRequest.ingredients[0].name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}
