package handler

import (
	"errors"
	"net/http"
	"time"

	"rentalhub/internal/repository"
	"rentalhub/internal/service"

	"github.com/gin-gonic/gin"
)

// Wire format for calendar dates, inclusive bounds on both ends.
const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// respondError maps engine errors onto HTTP statuses: validation 400,
// missing references 404, unsatisfiable reservations 409. Anything else is a
// server fault and is not detailed to the caller.
func respondError(c *gin.Context, err error) {
	var cascade *service.CascadeError
	switch {
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrWindowLocked):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrBoardNotFound),
		errors.Is(err, repository.ErrItemNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrReservationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &cascade):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":           "Board deletion incomplete, retry to release remaining items",
			"items_remaining": cascade.Remaining,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
