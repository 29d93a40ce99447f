package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

// BindJSON binds and validates the request body, answering 400 with the
// original "All fields are required." message when required fields are
// missing and a per-field breakdown otherwise.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err != nil {
		message, details := parseBindError(err)
		RespondBadRequest(ctx, message, details)

		return false
	}

	return true
}

func parseBindError(err error) (string, interface{}) {
	var validatorError validator.ValidationErrors

	if errors.As(err, &validatorError) {
		fields := make([]FieldError, 0, len(validatorError))
		allRequired := true

		for _, fieldError := range validatorError {
			rule := fieldError.Tag()
			param := fieldError.Param()

			if rule != "required" {
				allRequired = false
			}

			fields = append(fields, FieldError{
				Field:   lowerFirst(fieldError.Field()),
				Rule:    rule,
				Param:   param,
				Message: validationMessage(rule, param),
			})
		}

		message := "Invalid request body."

		if allRequired {
			message = "All fields are required."
		}
		return message, gin.H{"fields": fields}
	}

	var syntaxError *json.SyntaxError

	if errors.As(err, &syntaxError) {
		return "Invalid request body.", gin.H{"json": "invalid_json_syntax"}
	}

	var typeError *json.UnmarshalTypeError

	if errors.As(err, &typeError) {
		return "Invalid request body.", gin.H{
			"json":  "invalid_json_type",
			"field": typeError.Field,
		}
	}

	// empty body and friends
	return "Invalid request body.", gin.H{"reason": err.Error()}
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "gt":
		return "must be greater than " + param
	case "oneof":
		return "must be one of " + strings.ReplaceAll(param, " ", ", ")
	default:
		if param != "" {
			return "failed " + rule + " validation (" + param + ")"
		}
		return "failed " + rule + " validation"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
