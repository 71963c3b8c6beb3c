package httpapi

import (
	"encoding/json"
	"net/http"
)

const (
	codeValidation         = "validation_error"
	codeInvalidRequestBody = "invalid_request_body"
	codeUnsupportedMedia   = "unsupported_media_type"
	codeInvalidID          = "invalid_id"
	codeUsernameRequired   = "username_required"
	codeOrderNotFound      = "order_not_found"
	codeUserNotFound       = "user_not_found"
	codePaymentDeclined    = "payment_declined"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}
