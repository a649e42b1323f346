package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shelfwatch/shelfwatch/models"
	"github.com/shelfwatch/shelfwatch/woolworths"
)

// NewDriver builds a fresh driver for one request. Drivers carry per-session
// page state, so handlers never share one across requests.
type NewDriver func() *woolworths.Driver

// Product returns a handler for GET /api/v1/products/:id.
func Product(newDriver NewDriver) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := c.Param("id")
		if identifier == "" {
			c.JSON(http.StatusBadRequest, models.ProductResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "missing product identifier",
				},
			})
			return
		}

		product, err := newDriver().Find(c.Request.Context(), identifier)
		if err != nil {
			status, detail := errorDetail(err)
			c.JSON(status, models.ProductResponse{Success: false, Error: detail})
			return
		}

		c.JSON(http.StatusOK, models.ProductResponse{Success: true, Product: &product})
	}
}

// errorDetail maps an internal error to an HTTP status and API error detail.
// A connection failure means the upstream retailer was unreachable or served
// nothing, which is a gateway problem rather than an internal one.
func errorDetail(err error) (int, *models.ErrorDetail) {
	var driverErr *models.DriverError
	if errors.As(err, &driverErr) {
		status := http.StatusInternalServerError
		if driverErr.Code == models.ErrCodeConnectionFailed {
			status = http.StatusBadGateway
		}
		return status, driverErr.ToDetail()
	}
	return http.StatusInternalServerError, &models.ErrorDetail{
		Code:    models.ErrCodeInternal,
		Message: err.Error(),
	}
}
