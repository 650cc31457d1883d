package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context carries the request scoped values through the handler chain.
// Ctx is the context the repositories receive; middleware stores claims
// in it.
type Context struct {
	*gin.Context
	Ctx context.Context

	paramErrs map[string]string
	queryErrs map[string]string
}

// GetParam reads a path parameter and converts it to the requested kind.
// Conversion failures are collected and surfaced by ValidParam.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Param(name)

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(value)
		if err != nil {
			c.addParamErr(name, "must be an integer")
			return 0
		}
		return v
	case reflect.String:
		if value == "" {
			c.addParamErr(name, "is required")
		}
		return value
	default:
		c.addParamErr(name, fmt.Sprintf("unsupported kind %s", kind))
		return nil
	}
}

// ValidParam reports the path parameter conversion errors collected by
// GetParam.
func (c *Context) ValidParam() error {
	if len(c.paramErrs) == 0 {
		return nil
	}

	return &Error{
		Err:    errors.New("invalid path params"),
		Status: http.StatusBadRequest,
		Fields: c.paramErrs,
	}
}

// GetQueryFunc reads an optional query parameter and returns a typed
// pointer, nil when the parameter is absent.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value, ok := c.GetQuery(name)

	switch kind {
	case reflect.Int:
		if !ok {
			return (*int)(nil)
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			c.addQueryErr(name, "must be an integer")
			return (*int)(nil)
		}
		return &v
	case reflect.String:
		if !ok {
			return (*string)(nil)
		}
		return &value
	case reflect.Bool:
		if !ok {
			return (*bool)(nil)
		}
		v, err := strconv.ParseBool(value)
		if err != nil {
			c.addQueryErr(name, "must be a boolean")
			return (*bool)(nil)
		}
		return &v
	default:
		c.addQueryErr(name, fmt.Sprintf("unsupported kind %s", kind))
		return nil
	}
}

// ValidQuery reports the query conversion errors collected by
// GetQueryFunc.
func (c *Context) ValidQuery() error {
	if len(c.queryErrs) == 0 {
		return nil
	}

	return &Error{
		Err:    errors.New("invalid query params"),
		Status: http.StatusBadRequest,
		Fields: c.queryErrs,
	}
}

// BindFunc decodes the request body into data and checks that the named
// struct fields were provided.
func (c *Context) BindFunc(data interface{}, required ...string) error {
	if err := c.ShouldBind(data); err != nil {
		return &Error{
			Err:    errors.Wrap(err, "decoding request body"),
			Status: http.StatusBadRequest,
		}
	}

	if len(required) == 0 {
		return nil
	}

	fields := map[string]string{}
	v := reflect.ValueOf(data)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	for _, name := range required {
		f := v.FieldByName(name)
		if !f.IsValid() {
			continue
		}
		if f.IsZero() {
			fields[strings.ToLower(name)] = "is required"
		}
	}

	if len(fields) > 0 {
		return &Error{
			Err:    errors.New("missing required fields"),
			Status: http.StatusBadRequest,
			Fields: fields,
		}
	}

	return nil
}

// Respond sends the payload as JSON with the given status code.
func (c *Context) Respond(data interface{}, status int) error {
	c.JSON(status, data)
	return nil
}

// RespondError converts the error into a response. Trusted *Error values
// keep their status and message, everything else is a 500 with the cause
// kept out of the payload.
func (c *Context) RespondError(err error) error {
	if webErr := GetRequestError(err); webErr != nil {
		body := map[string]interface{}{
			"error":  webErr.Error(),
			"status": false,
		}
		if len(webErr.Fields) > 0 {
			body["fields"] = webErr.Fields
		}
		c.JSON(webErr.Status, body)
		return nil
	}

	log.Printf("untrusted error: %+v", err)

	c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error":  "internal server error",
		"status": false,
	})
	return nil
}

func (c *Context) addParamErr(name, msg string) {
	if c.paramErrs == nil {
		c.paramErrs = map[string]string{}
	}
	c.paramErrs[name] = msg
}

func (c *Context) addQueryErr(name, msg string) {
	if c.queryErrs == nil {
		c.queryErrs = map[string]string{}
	}
	c.queryErrs[name] = msg
}
