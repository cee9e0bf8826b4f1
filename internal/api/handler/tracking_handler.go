package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/parcelwatch/tracking-system/internal/core/detector"
	"github.com/parcelwatch/tracking-system/internal/core/domain"
	"github.com/parcelwatch/tracking-system/internal/core/ports"
)

// TrackingHandler handles HTTP requests for tracking lookups.
type TrackingHandler struct {
	service ports.TrackerService
}

func NewTrackingHandler(service ports.TrackerService) *TrackingHandler {
	return &TrackingHandler{service: service}
}

// --- Request / Response types ---

type trackResponse struct {
	TrackingNumber    string         `json:"tracking_number"`
	Formatted         string         `json:"formatted"`
	Carrier           string         `json:"carrier"`
	Status            string         `json:"status,omitempty"`
	LastUpdate        string         `json:"last_update,omitempty"`
	Location          string         `json:"location,omitempty"`
	Address           domain.Address `json:"address,omitempty"`
	EstimatedDelivery string         `json:"estimated_delivery,omitempty"`
}

type detectResponse struct {
	TrackingNumber string `json:"tracking_number"`
	Carrier        string `json:"carrier"`
	Valid          bool   `json:"valid"`
	Formatted      string `json:"formatted"`
}

type validateAddressRequest struct {
	Carrier    string `json:"carrier" validate:"required,oneof=UPS USPS DHL"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type validateAddressResponse struct {
	Carrier    string           `json:"carrier"`
	Checked    bool             `json:"checked"`
	Valid      bool             `json:"valid,omitempty"`
	Candidates []domain.Address `json:"candidates,omitempty"`
}

// Track handles GET /v1/track/:tracking_number.
func (h *TrackingHandler) Track(c echo.Context) error {
	trackingNumber := c.Param("tracking_number")
	if detector.Normalize(trackingNumber) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "tracking number is required")
	}

	record, err := h.service.Track(c.Request().Context(), trackingNumber)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, trackResponse{
		TrackingNumber:    detector.Normalize(trackingNumber),
		Formatted:         detector.FormatTrackingNumber(trackingNumber, record.Carrier),
		Carrier:           record.Carrier.String(),
		Status:            record.Status,
		LastUpdate:        record.LastUpdate,
		Location:          record.Location,
		Address:           record.Address,
		EstimatedDelivery: record.DeliveryEstimate,
	})
}

// Detect handles GET /v1/carriers/detect?tracking_number=…
// Exposes the classifier directly: an unrecognised format is a normal
// response (carrier UNKNOWN, valid false), not an error.
func (h *TrackingHandler) Detect(c echo.Context) error {
	trackingNumber := c.QueryParam("tracking_number")
	if detector.Normalize(trackingNumber) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "tracking_number query parameter is required")
	}

	carrier := detector.DetectCarrier(trackingNumber)
	return c.JSON(http.StatusOK, detectResponse{
		TrackingNumber: detector.Normalize(trackingNumber),
		Carrier:        carrier.String(),
		Valid:          carrier != domain.CarrierUnknown,
		Formatted:      detector.FormatTrackingNumber(trackingNumber, carrier),
	})
}

// ValidateAddress handles POST /v1/addresses/validate.
func (h *TrackingHandler) ValidateAddress(c echo.Context) error {
	var req validateAddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.ValidateAddress(c.Request().Context(), domain.Carrier(req.Carrier), domain.Address{
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	})
	if err != nil {
		return err
	}

	resp := validateAddressResponse{Carrier: req.Carrier}
	if result != nil {
		resp.Checked = true
		resp.Valid = result.Valid
		resp.Candidates = result.Candidates
	}
	return c.JSON(http.StatusOK, resp)
}
