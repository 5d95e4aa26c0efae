package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) statistics(c *gin.Context) {
	summary, err := s.deps.Stats.Summary(c.Request.Context(), c.Query("desde"), c.Query("hasta"))
	if err != nil {
		fail(c, "statistics", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) salesByChannel(c *gin.Context) {
	rows, err := s.deps.Stats.SalesByChannel(c.Request.Context(), c.Query("desde"), c.Query("hasta"))
	if err != nil {
		fail(c, "salesByChannel", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) salesByStatus(c *gin.Context) {
	rows, err := s.deps.Stats.SalesByStatus(c.Request.Context())
	if err != nil {
		fail(c, "salesByStatus", err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) listCustomers(c *gin.Context) {
	customers, err := s.deps.Stats.Customers(c.Request.Context())
	if err != nil {
		fail(c, "listCustomers", err)
		return
	}
	c.JSON(http.StatusOK, customers)
}
