package handler

import (
	"net/http"

	"rentalhub/internal/service"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	avail *service.AvailabilityService
}

func NewAvailabilityHandler(avail *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{avail: avail}
}

type CheckAvailabilityRequest struct {
	ProductID     uint   `json:"product_id" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required"`
	ReservedFrom  string `json:"reserved_from" binding:"required"`
	ReservedUntil string `json:"reserved_until" binding:"required"`
}

type CheckAvailabilityResponse struct {
	Available bool `json:"available"`
	FreeUnits int  `json:"free_units"`
}

// Check reports whether the requested quantity is free for the whole window.
// The answer is best-effort for display: it is not a hold, and stock may be
// taken by the time an item is actually added.
func (h *AvailabilityHandler) Check(c *gin.Context) {
	var req CheckAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	from, err := parseDate(req.ReservedFrom)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reserved_from, expected YYYY-MM-DD"})
		return
	}
	until, err := parseDate(req.ReservedUntil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reserved_until, expected YYYY-MM-DD"})
		return
	}

	result, err := h.avail.Check(c.Request.Context(), req.ProductID, req.Quantity, from, until)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CheckAvailabilityResponse{
		Available: result.Available,
		FreeUnits: result.FreeUnits,
	})
}
