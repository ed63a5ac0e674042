package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mahamabbas5/HospitalManagement-DSA/internal/model"
	"github.com/mahamabbas5/HospitalManagement-DSA/internal/service"
)

// StaffHandler exposes the staff directory.
type StaffHandler struct {
	Facility *service.Facility
}

func NewStaffHandler(f *service.Facility) *StaffHandler {
	if f == nil {
		panic("nil facility passed to NewStaffHandler")
	}
	return &StaffHandler{Facility: f}
}

type createStaffReq struct {
	ID         *int   `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Shift      string `json:"shift"`
}

// Create handles POST /v1/staff.  Returns 201 with the stored record,
// 400 for a missing/negative id or unknown role and 409 when the id is
// already taken.
func (h *StaffHandler) Create(c echo.Context) error {
	var req createStaffReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	rec := model.StaffRecord{
		ID:         *req.ID,
		Name:       req.Name,
		Role:       role,
		Department: strings.TrimSpace(req.Department),
		Shift:      strings.TrimSpace(req.Shift),
	}
	if err := h.Facility.AddStaff(rec); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, rec)
}

// List handles GET /v1/staff.
func (h *StaffHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Facility.Staff())
}

// Get handles GET /v1/staff/:id.
func (h *StaffHandler) Get(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid staff id"})
	}
	rec, found, err := h.Facility.FindStaff(id)
	if err != nil {
		return errorResponse(c, err)
	}
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "staff not found"})
	}
	return c.JSON(http.StatusOK, rec)
}

// Delete handles DELETE /v1/staff/:id.
func (h *StaffHandler) Delete(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid staff id"})
	}
	ok, err := h.Facility.DeleteStaff(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "staff not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
