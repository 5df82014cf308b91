package inventory

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vetcarepro/clinic-api/internal/handler"
	"github.com/vetcarepro/clinic-api/internal/model"
	"github.com/vetcarepro/clinic-api/internal/service"
)

type Handler struct {
	inventory *service.InventoryService
}

func NewHandler(inventory *service.InventoryService) *Handler {
	return &Handler{inventory: inventory}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	products := r.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/low-stock", h.LowStock)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.GET("/:id/movements", h.ListProductMovements)
	}

	movements := r.Group("/inventory/movements")
	{
		movements.POST("", h.CreateMovement)
		movements.GET("", h.ListMovements)
		movements.GET("/:id", h.GetMovement)
	}
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	p, err := h.inventory.CreateProduct(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(p))
}

func (h *Handler) ListProducts(c *gin.Context) {
	activeOnly := c.Query("include_inactive") != "true"
	ps, err := h.inventory.ListProducts(c.Request.Context(), activeOnly)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(ps))
}

func (h *Handler) LowStock(c *gin.Context) {
	ps, err := h.inventory.LowStock(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(ps))
}

func (h *Handler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid product id"))
		return
	}

	p, err := h.inventory.GetProduct(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid product id"))
		return
	}

	var req model.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	p, err := h.inventory.UpdateProduct(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) ListProductMovements(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid product id"))
		return
	}

	mvs, err := h.inventory.ListMovements(c.Request.Context(), &id, nil)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(mvs))
}

func (h *Handler) CreateMovement(c *gin.Context) {
	var req model.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BadRequest(c, err)
		return
	}

	mv, err := h.inventory.RecordMovement(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(mv))
}

func (h *Handler) ListMovements(c *gin.Context) {
	var movementType *model.MovementType
	if raw := c.Query("type"); raw != "" {
		t := model.MovementType(raw)
		movementType = &t
	}

	mvs, err := h.inventory.ListMovements(c.Request.Context(), nil, movementType)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(mvs))
}

func (h *Handler) GetMovement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid movement id"))
		return
	}

	mv, err := h.inventory.GetMovement(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(mv))
}
