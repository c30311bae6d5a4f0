package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

const (
	ValidationErrorType = "validation_failed"
	DecodingErrorType   = "decoding_failed"
	ServiceErrorType    = "service_error"
)

// Request bodies above the limit are rejected with 413
// Tokens and payloads are small, 64KB is more than enough
const MaxBodySize = 64 << 10

var validate = validator.New()

func init() {
	if err := configureValidator(validate); err != nil {
		panic(err)
	}
}

type Struct any

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, data any) {
	jsonWithStatus(w, data, http.StatusOK)
}

// Render ServiceError
func ServiceError(w http.ResponseWriter, message string, code int) {
	jsonWithStatus(w, ErrorResponse{Error: ServiceErrorType, Message: message}, code)
}

// Render request body that could not be decoded
// Too large body gets 413, anything else 400
func DecodeError(w http.ResponseWriter, err error) {
	var (
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
		sizeErr   *http.MaxBytesError
	)

	code := http.StatusBadRequest
	var message string

	switch {
	case errors.As(err, &sizeErr):
		code = http.StatusRequestEntityTooLarge
		message = "Request body is too large"
	case errors.As(err, &typeErr):
		message = fmt.Sprintf("Invalid data type for field '%s'", typeErr.Field)
	case errors.As(err, &syntaxErr):
		message = "Malformed JSON: " + syntaxErr.Error()
	default:
		message = fmt.Sprintf("Failed to parse JSON: %s", err.Error())
	}

	jsonWithStatus(w, ErrorResponse{Error: DecodingErrorType, Message: message}, code)
}

// Render ValidationErrors
// Field names are json names of the request fields
func ValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		fields[fe.Field()] = fieldMessage(fe)
	}

	jsonWithStatus(w, ErrorResponse{
		Error:   ValidationErrorType,
		Message: "Request validation failed",
		Fields:  fields,
	}, http.StatusBadRequest)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "token":
		return "Value is not a token"
	case "gt":
		return fmt.Sprintf("Value must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Value must not be less than %s", fe.Param())
	default:
		return "Invalid value"
	}
}

// BindAndValidate decodes at most MaxBodySize bytes of JSON body into T and validates it.
// On failure the error response is already written, caller has only to return.
func BindAndValidate[T Struct](w http.ResponseWriter, r *http.Request) (T, error) {
	var value T

	body := http.MaxBytesReader(w, r.Body, MaxBodySize)
	if err := json.NewDecoder(body).Decode(&value); err != nil {
		DecodeError(w, err)
		return value, err
	}

	if err := validate.Struct(value); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			// T is not a struct; a bug in the handler, not in the request
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return value, err
		}
		ValidationErrors(w, errs)
		return value, err
	}

	return value, nil
}

// jsonWithStatus sends data as json and enforces status code
func jsonWithStatus(w http.ResponseWriter, data any, code int) {
	buf := &bytes.Buffer{}

	if err := json.NewEncoder(buf).Encode(data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}
