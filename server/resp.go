package server

import (
	"errors"

	"github.com/curtisnewbie/timeaxis/core"
	"github.com/curtisnewbie/timeaxis/util/errs"
)

// Web endpoint's response envelope.
type Resp struct {
	ErrorCode string `json:"errorCode"`
	Msg       string `json:"msg"`
	Error     bool   `json:"error"`
	Data      any    `json:"data"`
}

// Wrap with a response object.
//
// Only the code and message of *errs.Err are exposed, the internal message is logged.
func WrapResp(data any, e error) Resp {
	if e != nil {
		var me *errs.Err
		if errors.As(e, &me) {
			code := errs.CodeOf(e)
			if code == "" {
				code = errs.ErrCodeGeneric
			}
			if code == errs.ErrCodeUnknownError {
				core.Errorf("Returned error, code: '%v', %v", code, errs.ErrorStackTrace(e))
			} else {
				core.Infof("Returned error, code: '%v', msg: '%v', internalMsg: '%v'", code, me.Msg(), me.InternalMsg())
			}
			return ErrorRespWCode(code, me.Msg())
		}

		// not a *errs.Err, just return some generic msg
		core.Errorf("Unknown error, %v", e)
		return ErrorResp("Unknown system error, please try again later")
	}

	if v, ok := data.(Resp); ok {
		return v
	}
	return OkRespWData(data)
}

// Build error Resp
func ErrorResp(msg string) Resp {
	return ErrorRespWCode(errs.ErrCodeGeneric, msg)
}

// Build error Resp
func ErrorRespWCode(code string, msg string) Resp {
	return Resp{
		ErrorCode: code,
		Msg:       msg,
		Error:     true,
	}
}

// Build OK Resp
func OkResp() Resp {
	return Resp{Error: false}
}

// Build OK Resp with data
func OkRespWData(data any) Resp {
	if data == nil {
		return OkResp()
	}
	return Resp{Data: data}
}
