package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "durianfarm/internal/errors"
)

// Response is the JSON envelope every endpoint returns. The status
// strings and field names are the compatibility surface for existing
// clients.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Result  interface{} `json:"result,omitempty"`
}

// AuthResponse is the envelope for register and login, which carry the
// session token at the top level next to the user record.
type AuthResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Result  interface{} `json:"result"`
	Token   string      `json:"token"`
}

func ok(c echo.Context, message string, result interface{}) error {
	return c.JSON(http.StatusOK, Response{Status: "Ok!", Message: message, Result: result})
}

func created(c echo.Context, message string, result interface{}) error {
	return c.JSON(http.StatusCreated, Response{Status: "Created", Message: message, Result: result})
}

func notFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, Response{Status: "Not Found", Message: message})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Response{Status: "Bad Request", Message: message})
}

// fail maps a domain error to the envelope: NotFoundError keeps its
// templated message under 404, anything else becomes a 500 with the
// operation's generic message. Details stay server-side.
func fail(c echo.Context, err error, internalMessage string) error {
	if apperrors.IsNotFound(err) {
		return notFound(c, err.Error())
	}
	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, Response{
		Status:  "Internal Server Error",
		Message: internalMessage,
	})
}
