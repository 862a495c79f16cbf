package web

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error carries an HTTP status through the call stack so the boundary can
// translate it. Data, when set, is attached to the error response body
// (used by the geofence rejection to report distance and required radius).
type Error struct {
	Err    error
	Status int
	Data   interface{}
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// NewRequestError wraps a cause with the status the response should carry.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

// RespondError translates err into the uniform {success, message} envelope.
// Unknown errors are logged and reported as a generic 500; nothing internal
// leaks to the caller.
func (c *Context) RespondError(err error) error {
	var webErr *Error
	if errors.As(err, &webErr) {
		body := gin.H{
			"success": false,
			"message": webErr.Err.Error(),
		}
		if webErr.Data != nil {
			body["data"] = webErr.Data
		}
		c.JSON(webErr.Status, body)
		return nil
	}

	log.Println("internal error:", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Internal server error",
	})
	return nil
}
