package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mahamabbas5/HospitalManagement-DSA/internal/service"
)

// BedHandler exposes the bed allocation index.
type BedHandler struct {
	Facility *service.Facility
}

// NewBedHandler panics on a nil facility, like the other constructors here.
func NewBedHandler(f *service.Facility) *BedHandler {
	if f == nil {
		panic("nil facility passed to NewBedHandler")
	}
	return &BedHandler{Facility: f}
}

type addBedsReq struct {
	BedIDs []int `json:"bed_ids"`
}

type allocateReq struct {
	PatientID *int `json:"patient_id"`
}

// AddBeds handles POST /v1/beds.  The body lists bed numbers to insert;
// numbers already present are ignored and reported back in "added".
func (h *BedHandler) AddBeds(c echo.Context) error {
	var req addBedsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(req.BedIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bed_ids is required"})
	}
	added := h.Facility.AddBeds(req.BedIDs)
	return c.JSON(http.StatusCreated, echo.Map{
		"requested": len(req.BedIDs),
		"added":     added,
	})
}

// ListBeds handles GET /v1/beds.
func (h *BedHandler) ListBeds(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Facility.Beds())
}

// Allocate handles POST /v1/beds/allocate.  A free bed yields 200; when
// none is free the patient is waitlisted and 202 is returned.
func (h *BedHandler) Allocate(c echo.Context) error {
	var req allocateReq
	if err := c.Bind(&req); err != nil || req.PatientID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "patient_id is required"})
	}
	res := h.Facility.AllocateBed(c.Request().Context(), *req.PatientID)
	if !res.Allocated {
		return c.JSON(http.StatusAccepted, res)
	}
	return c.JSON(http.StatusOK, res)
}

// Release handles POST /v1/beds/:id/release.
func (h *BedHandler) Release(c echo.Context) error {
	id, err := intParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid bed id"})
	}
	found, released := h.Facility.ReleaseBed(c.Request().Context(), id)
	switch {
	case !found:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "bed not found"})
	case !released:
		return c.JSON(http.StatusConflict, echo.Map{"error": "bed is already free"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bed_id": id, "available": true})
}

// WaitingList handles GET /v1/beds/waiting-list.
func (h *BedHandler) WaitingList(c echo.Context) error {
	wl := h.Facility.WaitingList()
	return c.JSON(http.StatusOK, echo.Map{"patient_ids": wl, "length": len(wl)})
}
