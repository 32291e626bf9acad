package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pricofy/football-api/internal/validate"
)

const maxBodyBytes = 1_048_576

type jsonResponse map[string]any

// readJSON decodes a single JSON object from the request body into dst.
// Unknown fields are rejected.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			field := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", field)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBodyBytes)
		default:
			return err
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	js, err := json.Marshal(data)
	if err != nil {
		h.log.Error("failed to encode response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(js); err != nil {
		h.log.Warn("failed to write response", zap.Error(err))
	}
}

func (h *Handler) badRequest(w http.ResponseWriter, message string) {
	h.writeJSON(w, http.StatusBadRequest, jsonResponse{"message": message})
}

// invalid reports a validation failure with the offending fields.
func (h *Handler) invalid(w http.ResponseWriter, message string, err error) {
	body := jsonResponse{"message": message}
	var verr *validate.Error
	if errors.As(err, &verr) {
		body["errors"] = verr.Fields
	} else {
		body["errors"] = []string{err.Error()}
	}
	h.writeJSON(w, http.StatusBadRequest, body)
}

func (h *Handler) notFound(w http.ResponseWriter, message string) {
	h.writeJSON(w, http.StatusNotFound, jsonResponse{"message": message})
}

// serverError returns the raw downstream error to the caller.
func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error("request failed",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	h.writeJSON(w, http.StatusInternalServerError, jsonResponse{"error": err.Error()})
}

// matchID parses the matchId path parameter.
func matchID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "matchId")
	if raw == "" {
		return 0, errors.New("matchId is required")
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("matchId must be a positive integer, got %q", raw)
	}
	return id, nil
}
