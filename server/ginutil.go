package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/curtisnewbie/timeaxis/adapter"
	"github.com/curtisnewbie/timeaxis/encoding/json"
	"github.com/curtisnewbie/timeaxis/util/errs"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

const (
	applicationJson = "application/json"
)

// Route handler that returns the response data or error.
type RouteHandler func(c *gin.Context) (any, error)

// Build gin.HandlerFunc that wraps the result in Resp.
func NewRouteHandler(handler RouteHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, e := handler(c)
		HandleResult(c, r, e)
	}
}

// Handle route's result
func HandleResult(c *gin.Context, r any, e error) {
	DispatchJson(c, WrapResp(r, e))
}

// Dispatch a json response
func DispatchJsonCode(c *gin.Context, code int, body any) {
	c.Status(code)
	c.Header("Content-Type", applicationJson)

	if err := json.EncodeJson(c.Writer, body); err != nil {
		panic(err)
	}
}

// Dispatch a json response
func DispatchJson(c *gin.Context, body any) {
	DispatchJsonCode(c, http.StatusOK, body)
}

// Dispatch error response in json format
func DispatchErrJson(c *gin.Context, err error) {
	DispatchJson(c, WrapResp(nil, err))
}

// Dispatch error response in json format
func DispatchErrMsgJson(c *gin.Context, msg string) {
	DispatchJson(c, ErrorResp(msg))
}

// Default Recovery func
func DefaultRecovery(c *gin.Context, e any) {
	if err, ok := e.(error); ok {
		DispatchErrJson(c, err)
		return
	}
	if msg, ok := e.(string); ok {
		DispatchErrMsgJson(c, msg)
		return
	}
	DispatchErrMsgJson(c, "Unknown error, please try again later")
}

// Required query parameter.
func requireQuery(c *gin.Context, key string) (string, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return "", errs.ErrIllegalArgument.WithInternalMsg("query parameter '%v' is missing", key)
	}
	return v, nil
}

// Required query parameter as epoch milliseconds.
func queryInstant(c *gin.Context, key string) (adapter.Instant, error) {
	v, err := requireQuery(c, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errs.ErrIllegalArgument.Wrapf(err, "query parameter '%v' is not an epoch", key)
	}
	return adapter.Instant(n), nil
}

// Optional query parameter as int, def if absent.
func queryInt(c *gin.Context, key string, def int) (int, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.ErrIllegalArgument.Wrapf(err, "query parameter '%v' is not an integer", key)
	}
	return n, nil
}

// Optional query parameter as bool, false if absent.
func queryBool(c *gin.Context, key string) (bool, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return false, nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false, errs.ErrIllegalArgument.Wrapf(err, "query parameter '%v' is not a bool", key)
	}
	return b, nil
}
