package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/mahamabbas5/HospitalManagement-DSA/internal/handler"
	"github.com/mahamabbas5/HospitalManagement-DSA/internal/metrics"
)

// Handlers groups the facility handlers mounted under /v1.
type Handlers struct {
	Beds    *handler.BedHandler
	Staff   *handler.StaffHandler
	Billing *handler.BillingHandler
}

// RegisterRoutes registers routes that sit outside /v1: the health check
// and, when m is non-nil, the Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo, m *metrics.Metrics) {
	e.GET("/healthz", handler.Health)
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}
}

// RegisterFacility mounts the bed, staff and billing endpoints under /v1.
// mw is applied to the whole group (rate limiting, response caching).
func RegisterFacility(e *echo.Echo, h Handlers, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)

	// beds
	g.POST("/beds", h.Beds.AddBeds)
	g.GET("/beds", h.Beds.ListBeds)
	g.POST("/beds/allocate", h.Beds.Allocate)
	g.POST("/beds/:id/release", h.Beds.Release)
	g.GET("/beds/waiting-list", h.Beds.WaitingList)

	// staff
	g.POST("/staff", h.Staff.Create)
	g.GET("/staff", h.Staff.List)
	g.GET("/staff/:id", h.Staff.Get)
	g.DELETE("/staff/:id", h.Staff.Delete)

	// billing; static paths win over :patient_id in echo's router
	g.POST("/bills", h.Billing.Add)
	g.GET("/bills", h.Billing.List)
	g.GET("/bills/largest", h.Billing.Largest)
	g.GET("/bills/export", h.Billing.Export)
	g.POST("/bills/pay-largest", h.Billing.PayLargest)
	g.POST("/bills/:patient_id/pay", h.Billing.PayPatient)
	g.GET("/bills/:patient_id", h.Billing.FindPatient)
}
