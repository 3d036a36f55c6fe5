package toolkit

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
)

const unknownErrorCode = "UNKNOWN_ERROR"

// Call runs a child with a JSON input string and always returns a JSON
// string, the convention of conversational agent frameworks:
//
//	{"status":"success", ...result fields}
//	{"status":"error","message":"...","code":"..."}
//
// Results that encode to a JSON object are merged next to the status;
// anything else is placed under "result".
func Call(ctx context.Context, c Child, input string) string {
	if strings.TrimSpace(input) == "" {
		input = "{}"
	}
	result, err := c.Handle(ctx, json.RawMessage(input))
	if err != nil {
		return Failure(err)
	}
	return Success(result)
}

// Success encodes result into a success envelope.
func Success(result interface{}) string {
	raw, err := json.Marshal(result)
	if err != nil {
		return Failure(NewError("result_encoding_error", err.Error()))
	}

	envelope := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope == nil {
		envelope = map[string]json.RawMessage{"result": raw}
	}
	envelope["status"] = json.RawMessage(`"success"`)

	out, err := json.Marshal(envelope)
	if err != nil {
		return Failure(NewError("result_encoding_error", err.Error()))
	}
	return string(out)
}

// Failure encodes err into an error envelope. The code is taken from a
// ToolKitError or Coder, otherwise UNKNOWN_ERROR.
func Failure(err error) string {
	code := unknownErrorCode
	message := err.Error()

	var tkErr ToolKitError
	var coder Coder
	switch {
	case errors.As(err, &tkErr):
		code = tkErr.Code
		message = tkErr.Message
	case errors.As(err, &coder):
		code = coder.ErrorCode()
	}

	out, _ := json.Marshal(struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}{"error", message, code})
	return string(out)
}
