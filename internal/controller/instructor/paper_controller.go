package instructor

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Margay/internal/controller"
	"github.com/lshigami/Margay/internal/dto"
	"github.com/lshigami/Margay/internal/model"
	"github.com/lshigami/Margay/internal/service"
	"github.com/rs/zerolog/log"
)

// PaperController is the instructor-facing authoring surface: paper and
// question CRUD on editable papers, submission, and read-only status queries.
type PaperController struct {
	paperService    service.PaperService
	questionService service.QuestionService
	ledgerService   service.ModerationLedgerService
	exportService   service.ExportService
}

func NewPaperController(
	paperService service.PaperService,
	questionService service.QuestionService,
	ledgerService service.ModerationLedgerService,
	exportService service.ExportService,
) *PaperController {
	return &PaperController{
		paperService:    paperService,
		questionService: questionService,
		ledgerService:   ledgerService,
		exportService:   exportService,
	}
}

// CreatePaper godoc
// @Summary (Instructor) Create a new draft paper
// @Tags Instructor - Papers
// @Accept json
// @Produce json
// @Param actor_id query int true "Instructor ID"
// @Param paper body dto.PaperCreateRequest true "Paper metadata"
// @Success 201 {object} dto.PaperResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /instructor/papers [post]
func (c *PaperController) CreatePaper(ctx *gin.Context) {
	actorID, ok := controller.ActorID(ctx, "actor_id")
	if !ok {
		return
	}
	var req dto.PaperCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body", Details: []string{err.Error()}})
		return
	}
	paper, err := c.paperService.CreatePaper(req, actorID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, paper)
}

// ListMyPapers godoc
// @Summary (Instructor) List own papers with question counts
// @Tags Instructor - Papers
// @Produce json
// @Param actor_id query int true "Instructor ID"
// @Success 200 {array} dto.PaperSummaryResponse
// @Router /instructor/papers [get]
func (c *PaperController) ListMyPapers(ctx *gin.Context) {
	actorID, ok := controller.ActorID(ctx, "actor_id")
	if !ok {
		return
	}
	papers, err := c.paperService.ListPapersByAuthor(actorID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, papers)
}

// GetPaper godoc
// @Summary (Instructor) Get a paper with its questions
// @Tags Instructor - Papers
// @Produce json
// @Param paper_id path int true "Paper ID"
// @Success 200 {object} dto.PaperResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /instructor/papers/{paper_id} [get]
func (c *PaperController) GetPaper(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	paper, err := c.paperService.GetPaper(paperID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, paper)
}

// UpdatePaper godoc
// @Summary (Instructor) Update editable paper metadata
// @Tags Instructor - Papers
// @Accept json
// @Produce json
// @Param paper_id path int true "Paper ID"
// @Param actor_id query int true "Instructor ID"
// @Param paper body dto.PaperUpdateRequest true "New metadata"
// @Success 200 {object} dto.PaperResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Paper finalized"
// @Router /instructor/papers/{paper_id} [put]
func (c *PaperController) UpdatePaper(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	actorID, ok := controller.ActorID(ctx, "actor_id")
	if !ok {
		return
	}
	var req dto.PaperUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body", Details: []string{err.Error()}})
		return
	}
	paper, err := c.paperService.UpdatePaper(paperID, req, actorID, false)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, paper)
}

// DeletePaper godoc
// @Summary (Instructor) Delete an own draft paper
// @Description Fails with 403 once the paper has been submitted; only an admin may delete then.
// @Tags Instructor - Papers
// @Produce json
// @Param paper_id path int true "Paper ID"
// @Param actor_id query int true "Instructor ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /instructor/papers/{paper_id} [delete]
func (c *PaperController) DeletePaper(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	actorID, ok := controller.ActorID(ctx, "actor_id")
	if !ok {
		return
	}
	if err := c.paperService.DeletePaper(paperID, actorID, false); err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "paper deleted"})
}

// SubmitPaper godoc
// @Summary (Instructor) Submit a paper for moderation
// @Tags Instructor - Papers
// @Produce json
// @Param paper_id path int true "Paper ID"
// @Param actor_id query int true "Instructor ID"
// @Success 200 {object} dto.PaperResponse
// @Failure 400 {object} dto.ErrorResponse "Empty paper or not editable"
// @Failure 409 {object} dto.ErrorResponse "Paper finalized"
// @Router /instructor/papers/{paper_id}/submit [post]
func (c *PaperController) SubmitPaper(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	actorID, ok := controller.ActorID(ctx, "actor_id")
	if !ok {
		return
	}
	paper, err := c.paperService.SubmitPaper(paperID, actorID)
	if err != nil {
		log.Warn().Err(err).Uint("paper_id", paperID).Msg("paper submission refused")
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, paper)
}

// AddQuestion godoc
// @Summary (Instructor) Add a question to an editable paper
// @Tags Instructor - Questions
// @Accept json
// @Produce json
// @Param paper_id path int true "Paper ID"
// @Param actor_id query int true "Instructor ID"
// @Param question body dto.QuestionRequest true "Question payload"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /instructor/papers/{paper_id}/questions [post]
func (c *PaperController) AddQuestion(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	actorID, ok := controller.ActorID(ctx, "actor_id")
	if !ok {
		return
	}
	var req dto.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body", Details: []string{err.Error()}})
		return
	}
	question, err := c.questionService.AddQuestion(paperID, req, actorID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// UpdateQuestion godoc
// @Summary (Instructor) Update a question on an editable paper
// @Tags Instructor - Questions
// @Accept json
// @Produce json
// @Param paper_id path int true "Paper ID"
// @Param question_id path int true "Question ID"
// @Param actor_id query int true "Instructor ID"
// @Param question body dto.QuestionRequest true "Question payload"
// @Success 200 {object} dto.QuestionResponse
// @Router /instructor/papers/{paper_id}/questions/{question_id} [put]
func (c *PaperController) UpdateQuestion(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	questionID, ok := controller.UintParam(ctx, "question_id")
	if !ok {
		return
	}
	actorID, ok := controller.ActorID(ctx, "actor_id")
	if !ok {
		return
	}
	var req dto.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body", Details: []string{err.Error()}})
		return
	}
	question, err := c.questionService.UpdateQuestion(paperID, questionID, req, actorID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// DeleteQuestion godoc
// @Summary (Instructor) Soft-delete a question from an editable paper
// @Tags Instructor - Questions
// @Produce json
// @Param paper_id path int true "Paper ID"
// @Param question_id path int true "Question ID"
// @Param actor_id query int true "Instructor ID"
// @Success 200 {object} dto.MessageResponse
// @Router /instructor/papers/{paper_id}/questions/{question_id} [delete]
func (c *PaperController) DeleteQuestion(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	questionID, ok := controller.UintParam(ctx, "question_id")
	if !ok {
		return
	}
	actorID, ok := controller.ActorID(ctx, "actor_id")
	if !ok {
		return
	}
	if err := c.questionService.DeleteQuestion(paperID, questionID, actorID); err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "question deleted"})
}

// ReorderQuestions godoc
// @Summary (Instructor) Set the display order of a paper's questions
// @Tags Instructor - Questions
// @Accept json
// @Produce json
// @Param paper_id path int true "Paper ID"
// @Param actor_id query int true "Instructor ID"
// @Param order body dto.QuestionReorderRequest true "Full ordered list of active question ids"
// @Success 200 {array} dto.QuestionResponse
// @Router /instructor/papers/{paper_id}/questions/order [put]
func (c *PaperController) ReorderQuestions(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	actorID, ok := controller.ActorID(ctx, "actor_id")
	if !ok {
		return
	}
	var req dto.QuestionReorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body", Details: []string{err.Error()}})
		return
	}
	questions, err := c.questionService.ReorderQuestions(paperID, req, actorID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// PaperStatus godoc
// @Summary (Instructor) Live moderation status of a paper
// @Description Stored coarse status plus per-question review state derived from the ledger.
// @Tags Instructor - Papers
// @Produce json
// @Param paper_id path int true "Paper ID"
// @Success 200 {object} dto.PaperStatusResponse
// @Router /instructor/papers/{paper_id}/status [get]
func (c *PaperController) PaperStatus(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	status, err := c.paperService.PaperStatus(paperID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, status)
}

// PaperRecords godoc
// @Summary (Instructor) Moderation history of a paper
// @Tags Instructor - Papers
// @Produce json
// @Param paper_id path int true "Paper ID"
// @Success 200 {array} dto.ModerationRecordResponse
// @Router /instructor/papers/{paper_id}/records [get]
func (c *PaperController) PaperRecords(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	records, err := c.ledgerService.RecordsFor(model.TargetTypePaper, paperID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, records)
}

// ExportPaper godoc
// @Summary (Instructor) Export snapshot of a submitted paper
// @Description The ordered question list and metadata the external PDF renderer consumes.
// @Tags Instructor - Papers
// @Produce json
// @Param paper_id path int true "Paper ID"
// @Success 200 {object} dto.PaperExportResponse
// @Failure 400 {object} dto.ErrorResponse "Paper still in draft"
// @Router /instructor/papers/{paper_id}/export [get]
func (c *PaperController) ExportPaper(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	snapshot, err := c.exportService.Snapshot(paperID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snapshot)
}
