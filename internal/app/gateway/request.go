package gateway

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/validation"
)

// Request is a parsed API call
type Request struct {
	Op      Operation
	ID      string
	Query   url.Values
	Payload json.RawMessage
	Actor   models.Actor
}

var errTeacherIDRequired = apperrors.NewValidationError("teacherId is required")

// ParseRequest resolves a method and legacy path such as
// "students/update.php/12" or "/api/sections/read.php?id=CS-1-A"
func ParseRequest(method, rawPath string) (Request, error) {
	u, err := url.Parse(rawPath)
	if err != nil {
		return Request{}, apperrors.NewValidationError(fmt.Sprintf("Malformed path %q", rawPath))
	}
	path := strings.Trim(u.Path, "/")
	path = strings.TrimPrefix(path, "api/")
	segments := strings.Split(path, "/")

	for _, route := range Routes {
		if route.Method != strings.ToUpper(method) {
			continue
		}
		if id, ok := matchPattern(route.Pattern, segments); ok {
			return Request{Op: route.Op, ID: id, Query: u.Query()}, nil
		}
	}
	return Request{}, apperrors.NewCustomError(apperrors.ErrResourceNotFound,
		fmt.Sprintf("Unknown endpoint %s %s", strings.ToUpper(method), path))
}

func matchPattern(pattern string, segments []string) (string, bool) {
	parts := strings.Split(pattern, "/")
	if len(parts) != len(segments) {
		return "", false
	}
	var id string
	for i, part := range parts {
		if part == "{id}" {
			if segments[i] == "" {
				return "", false
			}
			id = segments[i]
			continue
		}
		if part != segments[i] {
			return "", false
		}
	}
	return id, true
}

// intID parses the numeric id segment
func (r Request) intID() (int64, error) {
	id, err := strconv.ParseInt(r.ID, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError(fmt.Sprintf("Invalid id %q", r.ID))
	}
	return id, nil
}

// intQuery parses an optional numeric query parameter
func (r Request) intQuery(key string) (int64, bool, error) {
	raw := r.Query.Get(key)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, apperrors.NewValidationError(fmt.Sprintf("Invalid %s %q", key, raw))
	}
	return v, true, nil
}

// decodePayload unmarshals the JSON payload into T and validates it
func decodePayload[T any](r Request) (T, error) {
	var out T
	if len(r.Payload) == 0 {
		return out, apperrors.NewValidationError("Request body is required")
	}
	if err := json.Unmarshal(r.Payload, &out); err != nil {
		return out, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Invalid request body").
			WithDetails(map[string]interface{}{"error": err.Error()})
	}
	if err := validation.Struct(out); err != nil {
		return out, err
	}
	return out, nil
}

// encodePayload turns a caller supplied payload into JSON
func encodePayload(payload interface{}) (json.RawMessage, error) {
	switch p := payload.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return p, nil
	case []byte:
		return p, nil
	case string:
		return json.RawMessage(p), nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrValidationFailed, "Payload is not serializable")
	}
	return b, nil
}
