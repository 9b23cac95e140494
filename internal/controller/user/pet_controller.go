package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/k12tutor/internal/controller"
	"github.com/lshigami/k12tutor/internal/dto"
	"github.com/lshigami/k12tutor/internal/middleware"
	"github.com/lshigami/k12tutor/internal/service"
)

type PetController struct {
	petService service.PetService
}

func NewPetController(petService service.PetService) *PetController {
	return &PetController{petService: petService}
}

func (c *PetController) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/pet/items", c.ListItems)
	protected.POST("/pet/purchase", c.Purchase)
	protected.GET("/pet/inventory", c.Inventory)
}

// ListItems godoc
// @Summary Pet shop items
// @Tags Pets
// @Produce json
// @Success 200 {array} dto.PetItemResponse
// @Router /pet/items [get]
func (c *PetController) ListItems(ctx *gin.Context) {
	items, err := c.petService.ListItems(ctx.Request.Context())
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

// Purchase godoc
// @Summary Buy a pet item with points
// @Tags Pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param purchase body dto.PurchaseItemRequest true "Item to buy"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 400 {object} dto.ErrorResponse "Not enough points or item locked"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Router /pet/purchase [post]
func (c *PetController) Purchase(ctx *gin.Context) {
	var req dto.PurchaseItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.RespondBindError(ctx, err)
		return
	}
	resp, err := c.petService.Purchase(ctx.Request.Context(), middleware.StudentID(ctx), req.ItemID)
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Inventory godoc
// @Summary Items the student owns
// @Tags Pets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.OwnedPetItemResponse
// @Router /pet/inventory [get]
func (c *PetController) Inventory(ctx *gin.Context) {
	items, err := c.petService.Inventory(ctx.Request.Context(), middleware.StudentID(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}
