package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the body of every response.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Token   string `json:"token,omitempty"`
}

func Success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

// SuccessWithToken is used by register and login.
func SuccessWithToken(c *gin.Context, status int, message string, data any, token string) {
	c.JSON(status, Envelope{Status: StatusSuccess, Message: message, Data: data, Token: token})
}

// Fail writes err as an error envelope and aborts the chain.
func Fail(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = Internal(err)
	}
	c.AbortWithStatusJSON(e.StatusCode, Envelope{Status: StatusError, Message: e.Message})
}

// NoRoute answers unknown paths with the error envelope.
func NoRoute(c *gin.Context) {
	Fail(c, NewError(http.StatusNotFound, MsgRouteNotFound, nil))
}
