package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"comicvault/internal/microservices/http-api/dto"
)

// BodyError turns a JSON decoding failure into a client-facing Error.
func BodyError(err error) *Error {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.Is(err, io.EOF):
		return &Error{Field: "body", Message: "request body is required"}
	case errors.Is(err, io.ErrUnexpectedEOF):
		return &Error{Field: "body", Message: "malformed JSON: unexpected end of input"}
	case errors.As(err, &syntaxErr):
		return &Error{Field: "body", Message: fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)}
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return &Error{Field: "body", Message: fmt.Sprintf("request body must be %s", describe(typeErr.Type.Kind().String()))}
		}
		return &Error{Field: typeErr.Field, Message: fmt.Sprintf("%s must be %s", typeErr.Field, describe(typeErr.Type.Kind().String()))}
	default:
		return &Error{Field: "body", Message: "invalid request body"}
	}
}

func describe(kind string) string {
	switch kind {
	case "int", "int64":
		return "an integer"
	case "float64":
		return "a number"
	case "bool":
		return "a boolean"
	case "string":
		return "a string"
	case "slice":
		return "an array"
	case "struct", "map":
		return "an object"
	default:
		return "a valid " + kind
	}
}

// DecodeBatch decodes each element of a bulk import on its own so that a
// type mismatch names the entry it came from.
func DecodeBatch(raw []json.RawMessage) ([]dto.ComicInput, error) {
	in := make([]dto.ComicInput, len(raw))
	for i, elem := range raw {
		if err := json.Unmarshal(elem, &in[i]); err != nil {
			verr := BodyError(err)
			msg := verr.Message
			if verr.Field == "body" {
				msg = "comic must be a JSON object"
			}
			return nil, &Error{Field: verr.Field, Message: fmt.Sprintf("comic at index %d: %s", i, msg)}
		}
	}
	return in, nil
}
