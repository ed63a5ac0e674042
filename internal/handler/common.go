package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mahamabbas5/HospitalManagement-DSA/internal/repository"
)

// intParam parses a path parameter as a (possibly negative) integer.
// Range checks belong to the structures, so negative values pass here.
func intParam(c echo.Context, name string) (int, error) {
	return strconv.Atoi(c.Param(name))
}

// errorResponse maps repository sentinels to HTTP status codes.
func errorResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrInvalidArgument):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrDuplicateKey):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrEmptyLedger):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
