package utils

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/itchan-dev/roadboard/shared/errors"
	"github.com/itchan-dev/roadboard/shared/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// WriteErrorAndStatusCode answers with the status and curated message of the
// status error found in err; everything else is a 500 with a generic message.
// The full chain is only logged.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	status, message, ok := errors.Public(err)
	if !ok {
		logger.Log.Error("internal error", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if status >= http.StatusInternalServerError {
		logger.Log.Warn("request failed", "status", status, "error", err)
	} else {
		logger.Log.Debug("request rejected", "status", status, "error", err)
	}
	http.Error(w, message, status)
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("invalid json body", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("body validation failed", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func Decode(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Log.Error("failed to encode response", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
