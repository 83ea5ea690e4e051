package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/webapi/proxyutil"

	"github.com/xxxsen/legalease/internal/pkg/errcode"
)

// CodeError carries the numeric code and the user facing message of a
// failed request.
type CodeError struct {
	code uint32
	msg  string
}

func NewError(code int, msg string) CodeError {
	return CodeError{code: uint32(code), msg: msg}
}

func (e CodeError) Error() string {
	return e.msg
}

func (e CodeError) Code() uint32 {
	return e.code
}

func Success(c *gin.Context, data interface{}) {
	proxyutil.SuccessJson(c, data)
}

// Fail writes the error envelope. Errors without a code are reported as
// unknown.
func Fail(c *gin.Context, err error) {
	var ce CodeError
	if !errors.As(err, &ce) {
		ce = NewError(errcode.ErrUnknown, err.Error())
	}
	proxyutil.FailJson(c, http.StatusOK, ce)
}
