package api

import (
	"errors"
	"net/http"

	"shogun-be/internal/category"
	"shogun-be/internal/customization"
	"shogun-be/internal/product"

	"github.com/gin-gonic/gin"
)

const msgInvalidJSON = "JSON inválido"

// Categorías

func (s *Server) listCategories(c *gin.Context) {
	items, err := s.deps.Categories.List(c.Request.Context(), includeInactive(c), c.Query("q"))
	if err != nil {
		fail(c, "listCategories", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) createCategory(c *gin.Context) {
	var in category.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, msgInvalidJSON)
		return
	}
	created, err := s.deps.Categories.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, "createCategory", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "categoria": created})
}

func (s *Server) updateCategory(c *gin.Context) {
	var in category.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, msgInvalidJSON)
		return
	}
	updated, err := s.deps.Categories.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, "updateCategory", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categoria": updated})
}

func (s *Server) toggleCategory(c *gin.Context) {
	activo, ok := bindToggle(c)
	if !ok {
		return
	}
	found, err := s.deps.Categories.SetActive(c.Request.Context(), c.Param("id"), activo)
	if err != nil {
		fail(c, "toggleCategory", err)
		return
	}
	if !found {
		fail(c, "toggleCategory", category.ErrCategoryNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Productos

func (s *Server) listProducts(c *gin.Context) {
	items, err := s.deps.Products.List(c.Request.Context(), includeInactive(c))
	if err != nil {
		fail(c, "listProducts", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) validateSKU(c *gin.Context) {
	exists, err := s.deps.Products.SKUExists(c.Request.Context(), c.Query("sku"), c.Query("exclude"))
	if errors.Is(err, product.ErrSKUEmpty) {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": product.ErrSKUEmpty.Message})
		return
	}
	if err != nil {
		fail(c, "validateSKU", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": !exists, "exists": exists})
}

func (s *Server) createProduct(c *gin.Context) {
	var in product.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, msgInvalidJSON)
		return
	}
	created, err := s.deps.Products.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, "createProduct", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "producto": created})
}

func (s *Server) updateProduct(c *gin.Context) {
	var in product.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, msgInvalidJSON)
		return
	}
	updated, err := s.deps.Products.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, "updateProduct", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "producto": updated})
}

func (s *Server) toggleProduct(c *gin.Context) {
	activo, ok := bindToggle(c)
	if !ok {
		return
	}
	found, err := s.deps.Products.SetActive(c.Request.Context(), c.Param("id"), activo)
	if err != nil {
		fail(c, "toggleProduct", err)
		return
	}
	if !found {
		fail(c, "toggleProduct", product.ErrProductNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Personalizaciones

func (s *Server) listCustomizations(c *gin.Context) {
	items, err := s.deps.Customizations.List(c.Request.Context(), includeInactive(c))
	if err != nil {
		fail(c, "listCustomizations", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) createCustomization(c *gin.Context) {
	var in customization.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, msgInvalidJSON)
		return
	}
	created, err := s.deps.Customizations.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, "createCustomization", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "personalizacion": created})
}

func (s *Server) updateCustomization(c *gin.Context) {
	var in customization.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, msgInvalidJSON)
		return
	}
	updated, err := s.deps.Customizations.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, "updateCustomization", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "personalizacion": updated})
}

func (s *Server) toggleCustomization(c *gin.Context) {
	activo, ok := bindToggle(c)
	if !ok {
		return
	}
	found, err := s.deps.Customizations.SetActive(c.Request.Context(), c.Param("id"), activo)
	if err != nil {
		fail(c, "toggleCustomization", err)
		return
	}
	if !found {
		fail(c, "toggleCustomization", customization.ErrCustomizationNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
