package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shelfwatch/shelfwatch/models"
)

// Search returns a handler for GET /api/v1/search.
//
// Query parameters:
//
//	q     search keywords (required)
//	page  1-based page number; 0 traverses and merges every page (default 1)
func Search(newDriver NewDriver) gin.HandlerFunc {
	return func(c *gin.Context) {
		keywords := c.Query("q")
		if keywords == "" {
			c.JSON(http.StatusBadRequest, models.SearchResponse{
				Success: false,
				Error: &models.ErrorDetail{
					Code:    models.ErrCodeInvalidInput,
					Message: "missing search keywords: provide the q query parameter",
				},
			})
			return
		}

		page := 1
		if raw := c.Query("page"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				c.JSON(http.StatusBadRequest, models.SearchResponse{
					Success: false,
					Error: &models.ErrorDetail{
						Code:    models.ErrCodeInvalidInput,
						Message: "page must be a non-negative integer",
					},
				})
				return
			}
			page = parsed
		}

		driver := newDriver()
		query := models.QueryFromKeywords(keywords)

		var (
			results models.Results
			err     error
		)
		if page == 0 {
			results, err = driver.SearchAll(c.Request.Context(), query)
		} else {
			results, err = driver.SetPage(page).Search(c.Request.Context(), query)
		}
		if err != nil {
			status, detail := errorDetail(err)
			c.JSON(status, models.SearchResponse{Success: false, Error: detail})
			return
		}

		c.JSON(http.StatusOK, models.SearchResponse{
			Success:  true,
			Query:    keywords,
			Page:     driver.Page(),
			LastPage: driver.LastPage(),
			Count:    len(results.Products),
			Products: results.Products,
		})
	}
}
