package httpresponse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	sgferrors "sgfkit/internal/errors"
)

type Response[T any] struct {
	Status int `json:"Status"`
	Body   T   `json:"Body,omitempty"`
}

type ErrorResponse struct {
	ErrorDescription string `json:"ErrorDescription"`
}

const INTERNALERRORJSON = "{\"status\": 500,\"body\":{\"error\": \"Internal server error\"}}"

const MALFORMEDJSON_errorDesc = "json unmarshalling error"

func WriteResponseWithStatus(w http.ResponseWriter, status int, body any) {
	jsonByte, err := marshalStatusJson(status, body)
	if err != nil {
		WriteInternalErrorResponse(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(jsonByte)
}

func marshalStatusJson(status int, body any) ([]byte, error) {
	response := Response[any]{
		Status: status,
		Body:   body,
	}
	return json.Marshal(response)
}

// StatusFromError переводит ошибки домена в HTTP-статус.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, sgferrors.ErrDocumentNotFound), errors.Is(err, sgferrors.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, sgferrors.ErrInvalidDocument),
		errors.Is(err, sgferrors.ErrInvalidArgument),
		errors.Is(err, sgferrors.ErrInvalidValueType):
		return http.StatusBadRequest
	case errors.Is(err, sgferrors.ErrPreconditionViolated):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError пишет ошибку; текст внутренних ошибок наружу не отдаётся.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFromError(err)
	if status == http.StatusInternalServerError {
		WriteInternalErrorResponse(w)
		return
	}
	WriteResponseWithStatus(w, status, ErrorResponse{ErrorDescription: err.Error()})
}

func WriteInternalErrorResponse(w http.ResponseWriter) {
	// как http.Error, только с Content-Type: application/json
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintln(w, INTERNALERRORJSON)
}
