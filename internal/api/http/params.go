package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rental-frontend/internal/domain"
)

type paramError struct {
	name   string
	reason string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("parámetro inválido %q: %s", e.name, e.reason)
}

func queryValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

func requiredInt(r *http.Request, name string) (int, error) {
	raw := queryValue(r, name)
	if raw == "" {
		return 0, &paramError{name: name, reason: "requerido"}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{name: name, reason: "debe ser un entero"}
	}
	return n, nil
}

func optionalInt(r *http.Request, name string) (*int, error) {
	if queryValue(r, name) == "" {
		return nil, nil
	}
	n, err := requiredInt(r, name)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func requiredFloat(r *http.Request, name string) (float64, error) {
	raw := queryValue(r, name)
	if raw == "" {
		return 0, &paramError{name: name, reason: "requerido"}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &paramError{name: name, reason: "debe ser un número"}
	}
	return f, nil
}

func optionalDate(r *http.Request, name string) (*time.Time, error) {
	raw := queryValue(r, name)
	if raw == "" {
		return nil, nil
	}
	d, err := domain.ParseDateTime(raw)
	if err != nil {
		return nil, &paramError{name: name, reason: "fecha no reconocida"}
	}
	return &d.Time, nil
}

// intParams reads several required integers, stopping at the first bad one.
func intParams(r *http.Request, names ...string) ([]int, error) {
	out := make([]int, len(names))
	for i, name := range names {
		n, err := requiredInt(r, name)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
