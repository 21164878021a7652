package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tunahan/uniplanner/internal/app/models"
	"github.com/tunahan/uniplanner/internal/app/models/dto"
	"github.com/tunahan/uniplanner/internal/app/services"
	"github.com/tunahan/uniplanner/internal/middleware"
)

// CatalogController serves read-only views of the academic records.
type CatalogController struct {
	catalogService services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// ListCourses retrieves courses, optionally narrowed by semester or parity
// @Summary List courses
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param semester query int false "Semester 1-8"
// @Param parity query string false "odd or even"
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Failure 400 {object} dto.ErrorResponse "Invalid selector"
// @Router /courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	semester := 0
	if raw := ctx.Query("semester"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeInvalidSelector, "Semester must be a number.")))
			return
		}
		semester = parsed
	}

	sel, err := models.NewSemesterSelector(semester, ctx.Query("parity"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	courses, err := c.catalogService.ListCourses(ctx.Request.Context(), sel)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// ListBatches retrieves all student batches
// @Summary List batches
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Batch}
// @Router /batches [get]
func (c *CatalogController) ListBatches(ctx *gin.Context) {
	batches, err := c.catalogService.ListBatches(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(batches))
}

// ListRooms retrieves all rooms
// @Summary List rooms
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Room}
// @Router /rooms [get]
func (c *CatalogController) ListRooms(ctx *gin.Context) {
	rooms, err := c.catalogService.ListRooms(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(rooms))
}

// ListSlots retrieves all time slots ordered by weekday and start time
// @Summary List time slots
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Slot}
// @Router /slots [get]
func (c *CatalogController) ListSlots(ctx *gin.Context) {
	slots, err := c.catalogService.ListSlots(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(slots))
}
