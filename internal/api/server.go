package api

import (
	"context"
	"net/http"

	"shogun-be/internal/attachment"
	"shogun-be/internal/category"
	"shogun-be/internal/comment"
	"shogun-be/internal/customization"
	"shogun-be/internal/metrics"
	"shogun-be/internal/middleware"
	"shogun-be/internal/order"
	"shogun-be/internal/product"
	"shogun-be/internal/stats"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func init() {
	// money goes out as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

// FileLocator serves locally stored attachments behind download tokens.
type FileLocator interface {
	Locate(ctx context.Context, token string) (string, error)
}

type Deps struct {
	DB             Pinger
	Products       product.Service
	Customizations customization.Service
	Categories     category.Service
	Orders         order.Service
	Stats          stats.Service
	Comments       comment.Service
	Attachments    attachment.Service
	Files          FileLocator
	Metrics        *metrics.Registry
	Version        string
}

type Server struct {
	engine *gin.Engine
	deps   Deps
}

func NewServer(deps Deps) *Server {
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewRegistry()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	s := &Server{engine: r, deps: deps}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

func (s *Server) registerRoutes() {
	s.engine.GET("/health", s.health)

	api := s.engine.Group("/api")

	api.POST("/login", middleware.RequireUser(), s.login)
	api.GET("/verify", s.verify)
	api.POST("/logout", s.logout)

	admin := middleware.RequireAdmin()
	authed := middleware.RequireUser()

	api.GET("/categorias", s.listCategories)
	api.POST("/categorias", admin, s.createCategory)
	api.PUT("/categorias/:id", admin, s.updateCategory)
	api.PATCH("/categorias/:id/toggle", admin, s.toggleCategory)

	api.GET("/productos", s.listProducts)
	api.GET("/productos/validar-sku", admin, s.validateSKU)
	api.POST("/productos", admin, s.createProduct)
	api.PUT("/productos/:id", admin, s.updateProduct)
	api.PATCH("/productos/:id/toggle", admin, s.toggleProduct)

	api.GET("/personalizaciones", s.listCustomizations)
	api.POST("/personalizaciones", admin, s.createCustomization)
	api.PUT("/personalizaciones/:id", admin, s.updateCustomization)
	api.PATCH("/personalizaciones/:id/toggle", admin, s.toggleCustomization)

	pedidos := api.Group("/pedidos")
	{
		pedidos.GET("", authed, s.listOrders)
		pedidos.POST("", admin, s.createOrder)
		pedidos.GET("/pendientes", authed, s.pendingOrders)
		pedidos.GET("/buscar", authed, s.searchOrders)
		pedidos.GET("/:id", authed, s.getOrder)
		pedidos.PUT("/:id", authed, s.updateOrder)
		pedidos.DELETE("/:id", admin, s.deleteOrder)

		pedidos.GET("/:id/comentarios", authed, s.listComments)
		pedidos.POST("/:id/comentarios", authed, s.createComment)
		pedidos.DELETE("/:id/comentarios/:comentarioId", authed, s.deleteComment)

		pedidos.GET("/:id/adjuntos", authed, s.listAttachments)
		pedidos.POST("/:id/adjuntos", authed, s.uploadAttachment)
		pedidos.GET("/:id/adjuntos/:adjuntoId/download", authed, s.downloadAttachment)
		pedidos.DELETE("/:id/adjuntos/:adjuntoId", authed, s.deleteAttachment)
	}

	api.GET("/clientes", authed, s.listCustomers)

	api.GET("/estadisticas", authed, s.statistics)
	api.GET("/estadisticas/canales", authed, s.salesByChannel)
	api.GET("/estadisticas/estados", authed, s.salesByStatus)

	if s.deps.Files != nil {
		api.GET("/archivos/:token", s.serveFile)
	}
}
