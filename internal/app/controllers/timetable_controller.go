package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tunahan/uniplanner/internal/app/models"
	"github.com/tunahan/uniplanner/internal/app/models/dto"
	"github.com/tunahan/uniplanner/internal/app/services"
	"github.com/tunahan/uniplanner/internal/middleware"
)

// TimetableController handles timetable generation requests
type TimetableController struct {
	timetableService services.TimetableService
}

// NewTimetableController creates a new TimetableController
func NewTimetableController(timetableService services.TimetableService) *TimetableController {
	return &TimetableController{
		timetableService: timetableService,
	}
}

// GenerateTimetable runs the solver pipeline and streams the rendered PDF
// @Summary Generate a timetable
// @Description Runs the external scheduling engine over the current records and returns the rendered timetable as a PDF
// @Tags timetable
// @Accept json
// @Produce application/pdf
// @Security BearerAuth
// @Param request body dto.GenerateTimetableRequest false "Semester selection (empty body schedules all semesters)"
// @Success 200 {file} binary "Rendered timetable PDF"
// @Failure 400 {object} dto.ErrorResponse "Invalid selector or incomplete records"
// @Failure 422 {object} dto.ErrorResponse "No feasible solution"
// @Failure 500 {object} dto.ErrorResponse "Engine contract violation or rendering failure"
// @Failure 504 {object} dto.ErrorResponse "Engine timed out"
// @Router /timetable/generate [post]
func (c *TimetableController) GenerateTimetable(ctx *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	sel, err := models.NewSemesterSelector(req.Semester, req.Parity)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	artifact, err := c.timetableService.Generate(ctx.Request.Context(), sel)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	ctx.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}
