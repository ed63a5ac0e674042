package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mahamabbas5/HospitalManagement-DSA/internal/model"
	"github.com/mahamabbas5/HospitalManagement-DSA/internal/report"
	"github.com/mahamabbas5/HospitalManagement-DSA/internal/service"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BillingHandler exposes the billing ledger.
type BillingHandler struct {
	Facility *service.Facility
}

func NewBillingHandler(f *service.Facility) *BillingHandler {
	if f == nil {
		panic("nil facility passed to NewBillingHandler")
	}
	return &BillingHandler{Facility: f}
}

type addBillReq struct {
	PatientID     *int     `json:"patient_id"`
	Amount        *float64 `json:"amount"`
	PaymentMethod string   `json:"payment_method"`
}

// Add handles POST /v1/bills.  Charges accumulate into the patient's
// pending bill; the response carries the pending bill after the charge.
func (h *BillingHandler) Add(c echo.Context) error {
	var req addBillReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.PatientID == nil || req.Amount == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "patient_id and amount are required"})
	}
	method, err := model.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	rec, err := h.Facility.AddBill(*req.PatientID, *req.Amount, method)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, rec)
}

// List handles GET /v1/bills.  Pending bills come in heap order, so the
// first one is always the largest.
func (h *BillingHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Facility.Bills())
}

// Largest handles GET /v1/bills/largest.
func (h *BillingHandler) Largest(c echo.Context) error {
	rec, ok := h.Facility.LargestBill()
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no pending bills"})
	}
	return c.JSON(http.StatusOK, rec)
}

// PayLargest handles POST /v1/bills/pay-largest.  Returns 409 when the
// ledger has no pending bills.
func (h *BillingHandler) PayLargest(c echo.Context) error {
	rec, err := h.Facility.PayLargestBill(c.Request().Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// PayPatient handles POST /v1/bills/:patient_id/pay.
func (h *BillingHandler) PayPatient(c echo.Context) error {
	id, err := intParam(c, "patient_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid patient id"})
	}
	rec, ok := h.Facility.PayBill(c.Request().Context(), id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no pending bill for patient"})
	}
	return c.JSON(http.StatusOK, rec)
}

// FindPatient handles GET /v1/bills/:patient_id.
func (h *BillingHandler) FindPatient(c echo.Context) error {
	id, err := intParam(c, "patient_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid patient id"})
	}
	recs := h.Facility.FindBills(id)
	if len(recs) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no bills for patient"})
	}
	return c.JSON(http.StatusOK, echo.Map{"patient_id": id, "records": recs})
}

// Export handles GET /v1/bills/export and streams the ledger as .xlsx.
func (h *BillingHandler) Export(c echo.Context) error {
	snap := h.Facility.Bills()
	data, err := report.LedgerWorkbook(snap.Pending, snap.Settled)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to build workbook"})
	}
	name := fmt.Sprintf("ledger-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, xlsxMIME, data)
}
