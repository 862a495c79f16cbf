package web

import (
	"context"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context carries the request context and the helpers handlers use to bind,
// validate and respond. Ctx is the context to pass down to repositories; the
// auth middleware replaces it with one carrying the caller's claims.
type Context struct {
	*gin.Context
	Ctx context.Context

	queryErrors []error
	paramErrors []error
}

// BindFunc binds the JSON body into obj and checks that the named struct
// fields were actually provided (non-zero after binding).
func (c *Context) BindFunc(obj interface{}, required ...string) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return NewRequestError(errors.Wrap(err, "parsing request body"), http.StatusBadRequest)
	}

	if len(required) == 0 {
		return nil
	}

	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	var missing []string
	for _, name := range required {
		f := v.FieldByName(name)
		if !f.IsValid() || f.IsZero() {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return NewRequestError(errors.Errorf("required field(s): %s", strings.Join(missing, ", ")), http.StatusBadRequest)
	}

	return nil
}

// GetQueryFunc returns a typed pointer for the named query parameter, nil
// when the parameter is absent. Parse failures are collected and surfaced
// by ValidQuery.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value, ok := c.GetQuery(name)

	switch kind {
	case reflect.Int:
		if !ok {
			return (*int)(nil)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			c.queryErrors = append(c.queryErrors, errors.Errorf("query parameter %q must be an integer", name))
			return (*int)(nil)
		}
		return &n
	case reflect.String:
		if !ok {
			return (*string)(nil)
		}
		return &value
	case reflect.Bool:
		if !ok {
			return (*bool)(nil)
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			c.queryErrors = append(c.queryErrors, errors.Errorf("query parameter %q must be a boolean", name))
			return (*bool)(nil)
		}
		return &b
	}

	return nil
}

// GetParam returns the named path parameter converted to the requested kind.
// Parse failures are collected and surfaced by ValidParam.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Param(name)

	switch kind {
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			c.paramErrors = append(c.paramErrors, errors.Errorf("path parameter %q must be an integer", name))
			return 0
		}
		return n
	case reflect.String:
		return value
	}

	return nil
}

func (c *Context) ValidQuery() error {
	return joinErrors(c.queryErrors)
}

func (c *Context) ValidParam() error {
	return joinErrors(c.paramErrors)
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	messages := make([]string, len(errs))
	for i, err := range errs {
		messages[i] = err.Error()
	}
	return NewRequestError(errors.New(strings.Join(messages, "; ")), http.StatusBadRequest)
}

// Respond writes data as JSON with the given status code.
func (c *Context) Respond(data interface{}, status int) error {
	c.JSON(status, data)
	return nil
}
