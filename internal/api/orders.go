package api

import (
	"encoding/json"
	"net/http"

	"shogun-be/internal/order"
	"shogun-be/internal/utils"

	"github.com/gin-gonic/gin"
)

func (s *Server) listOrders(c *gin.Context) {
	orders, err := s.deps.Orders.List(c.Request.Context())
	if err != nil {
		fail(c, "listOrders", err)
		return
	}
	c.JSON(http.StatusOK, order.ToResponses(orders))
}

func (s *Server) getOrder(c *gin.Context) {
	o, err := s.deps.Orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "getOrder", err)
		return
	}
	c.JSON(http.StatusOK, order.ToResponse(o))
}

func (s *Server) createOrder(c *gin.Context) {
	var in order.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, msgInvalidJSON)
		return
	}

	res, err := s.deps.Orders.CreateOrder(c.Request.Context(), in)
	if err != nil {
		fail(c, "createOrder", err)
		return
	}
	s.deps.Metrics.OrdersCreated.Inc()

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"pedido_id":     res.ID,
		"fecha_entrega": utils.FormatDMY(res.FechaCompromiso),
		"total":         res.PrecioTotal,
		"ganancia":      res.Ganancia,
		"created_by":    callerOf(c).Email,
	})
}

func (s *Server) updateOrder(c *gin.Context) {
	var fields map[string]interface{}
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil || len(fields) == 0 {
		badRequest(c, "No data provided")
		return
	}

	plan, found, err := s.deps.Orders.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		fail(c, "updateOrder", err)
		return
	}
	if !found {
		fail(c, "updateOrder", order.ErrOrderNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"updated_by": callerOf(c).Email,
		"campos":     plan.Outcomes,
	})
}

func (s *Server) deleteOrder(c *gin.Context) {
	found, err := s.deps.Orders.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "deleteOrder", err)
		return
	}
	if !found {
		fail(c, "deleteOrder", order.ErrOrderNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted_by": callerOf(c).Email})
}

func (s *Server) searchOrders(c *gin.Context) {
	orders, err := s.deps.Orders.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, "searchOrders", err)
		return
	}
	c.JSON(http.StatusOK, order.ToResponses(orders))
}

func (s *Server) pendingOrders(c *gin.Context) {
	pending, err := s.deps.Stats.Pending(c.Request.Context())
	if err != nil {
		fail(c, "pendingOrders", err)
		return
	}
	c.JSON(http.StatusOK, pending)
}
