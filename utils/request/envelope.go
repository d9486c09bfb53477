package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/nmdong/VietThanhProductions/utils/response"
)

var (
	ErrInvalidAction = errors.New("envelope action does not match endpoint")
	ErrInvalidData   = errors.New("envelope data is malformed")
)

// Envelope is the wrapper every mutating request body uses:
//
//	{"action": "login", "data": {...}, "meta": {...}}
type Envelope struct {
	Action string                 `json:"action"`
	Data   json.RawMessage        `json:"data"`
	Meta   map[string]interface{} `json:"meta,omitempty"`
}

// Parse decodes body into an envelope and, when the action matches, decodes
// its data into dst. A body that is not valid JSON is treated as an empty
// envelope and therefore fails the action check.
func Parse(body []byte, expectedAction string, dst interface{}) (*Envelope, error) {
	var env Envelope
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &env); err != nil {
			env = Envelope{}
		}
	}

	if env.Action != expectedAction {
		return &env, fmt.Errorf("%w: expected %q, got %q", ErrInvalidAction, expectedAction, env.Action)
	}

	if dst != nil && len(env.Data) > 0 && !bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
		if err := json.Unmarshal(env.Data, dst); err != nil {
			return &env, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
	}

	return &env, nil
}

// Bind parses the request body of c and converts failures into API errors
// that the application error handler renders.
func Bind(c *fiber.Ctx, expectedAction string, dst interface{}) (*Envelope, error) {
	env, err := Parse(c.Body(), expectedAction, dst)
	switch {
	case err == nil:
		return env, nil
	case errors.Is(err, ErrInvalidAction):
		return nil, response.NewAPIError(fiber.StatusBadRequest, response.CodeInvalidAction,
			fmt.Sprintf("Expected action '%s'", expectedAction))
	default:
		return nil, &response.APIError{
			Status:  fiber.StatusBadRequest,
			Code:    response.CodeValidationError,
			Message: "Request data is malformed",
			Details: err.Error(),
		}
	}
}
