package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Margay/internal/controller"
	"github.com/lshigami/Margay/internal/dto"
	"github.com/lshigami/Margay/internal/service"
	"github.com/rs/zerolog/log"
)

// AdminController manages the course catalog and administrative overrides.
type AdminController struct {
	courseService service.CourseService
	paperService  service.PaperService
}

func NewAdminController(courseService service.CourseService, paperService service.PaperService) *AdminController {
	return &AdminController{courseService: courseService, paperService: paperService}
}

// CreateCourse godoc
// @Summary (Admin) Create a course
// @Tags Admin - Courses
// @Accept json
// @Produce json
// @Param course body dto.CourseCreateRequest true "Course data"
// @Success 201 {object} dto.CourseResponse
// @Router /admin/courses [post]
func (c *AdminController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body", Details: []string{err.Error()}})
		return
	}
	course, err := c.courseService.CreateCourse(req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, course)
}

// ListCourses godoc
// @Summary (Admin) List courses
// @Tags Admin - Courses
// @Produce json
// @Success 200 {array} dto.CourseResponse
// @Router /admin/courses [get]
func (c *AdminController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses()
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, courses)
}

// GetCourse godoc
// @Summary (Admin) Get a course with its outcomes
// @Tags Admin - Courses
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.CourseResponse
// @Router /admin/courses/{course_id} [get]
func (c *AdminController) GetCourse(ctx *gin.Context) {
	courseID, ok := controller.UintParam(ctx, "course_id")
	if !ok {
		return
	}
	course, err := c.courseService.GetCourse(courseID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// UpdateCourse godoc
// @Summary (Admin) Update a course's code and title
// @Tags Admin - Courses
// @Accept json
// @Produce json
// @Param course_id path int true "Course ID"
// @Param course body dto.CourseUpdateRequest true "New course data"
// @Success 200 {object} dto.CourseResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/courses/{course_id} [put]
func (c *AdminController) UpdateCourse(ctx *gin.Context) {
	courseID, ok := controller.UintParam(ctx, "course_id")
	if !ok {
		return
	}
	var req dto.CourseUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body", Details: []string{err.Error()}})
		return
	}
	course, err := c.courseService.UpdateCourse(courseID, req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// DeleteCourse godoc
// @Summary (Admin) Delete a course
// @Tags Admin - Courses
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.MessageResponse
// @Router /admin/courses/{course_id} [delete]
func (c *AdminController) DeleteCourse(ctx *gin.Context) {
	courseID, ok := controller.UintParam(ctx, "course_id")
	if !ok {
		return
	}
	if err := c.courseService.DeleteCourse(courseID); err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "course deleted"})
}

// AddOutcome godoc
// @Summary (Admin) Add a course outcome
// @Tags Admin - Courses
// @Accept json
// @Produce json
// @Param course_id path int true "Course ID"
// @Param outcome body dto.CourseOutcomeCreateRequest true "Outcome data"
// @Success 201 {object} dto.CourseOutcomeResponse
// @Router /admin/courses/{course_id}/outcomes [post]
func (c *AdminController) AddOutcome(ctx *gin.Context) {
	courseID, ok := controller.UintParam(ctx, "course_id")
	if !ok {
		return
	}
	var req dto.CourseOutcomeCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body", Details: []string{err.Error()}})
		return
	}
	outcome, err := c.courseService.AddOutcome(courseID, req)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, outcome)
}

// ListOutcomes godoc
// @Summary (Admin) List outcomes of a course
// @Tags Admin - Courses
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {array} dto.CourseOutcomeResponse
// @Router /admin/courses/{course_id}/outcomes [get]
func (c *AdminController) ListOutcomes(ctx *gin.Context) {
	courseID, ok := controller.UintParam(ctx, "course_id")
	if !ok {
		return
	}
	outcomes, err := c.courseService.ListOutcomes(courseID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, outcomes)
}

// DeleteOutcome godoc
// @Summary (Admin) Delete a course outcome
// @Tags Admin - Courses
// @Produce json
// @Param course_id path int true "Course ID"
// @Param outcome_id path int true "Outcome ID"
// @Success 200 {object} dto.MessageResponse
// @Router /admin/courses/{course_id}/outcomes/{outcome_id} [delete]
func (c *AdminController) DeleteOutcome(ctx *gin.Context) {
	courseID, ok := controller.UintParam(ctx, "course_id")
	if !ok {
		return
	}
	outcomeID, ok := controller.UintParam(ctx, "outcome_id")
	if !ok {
		return
	}
	if err := c.courseService.DeleteOutcome(courseID, outcomeID); err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "outcome deleted"})
}

// DeletePaper godoc
// @Summary (Admin) Delete any paper (administrative override)
// @Tags Admin - Papers
// @Produce json
// @Param paper_id path int true "Paper ID"
// @Param actor_id query int true "Admin ID"
// @Success 200 {object} dto.MessageResponse
// @Router /admin/papers/{paper_id} [delete]
func (c *AdminController) DeletePaper(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	actorID, ok := controller.ActorID(ctx, "actor_id")
	if !ok {
		return
	}
	if err := c.paperService.DeletePaper(paperID, actorID, true); err != nil {
		controller.WriteError(ctx, err)
		return
	}
	log.Info().Uint("paper_id", paperID).Uint("admin_id", actorID).Msg("paper deleted by administrative override")
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "paper deleted"})
}
