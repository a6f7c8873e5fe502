package moderator

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Margay/internal/controller"
	"github.com/lshigami/Margay/internal/dto"
	"github.com/lshigami/Margay/internal/model"
	"github.com/lshigami/Margay/internal/service"
	"github.com/rs/zerolog/log"
)

// ModerationController is the moderator-facing surface: the review queue,
// claims, approvals, rejections and history queries.
type ModerationController struct {
	paperService  service.PaperService
	claimService  service.ClaimService
	ledgerService service.ModerationLedgerService
}

func NewModerationController(
	paperService service.PaperService,
	claimService service.ClaimService,
	ledgerService service.ModerationLedgerService,
) *ModerationController {
	return &ModerationController{
		paperService:  paperService,
		claimService:  claimService,
		ledgerService: ledgerService,
	}
}

// Queue godoc
// @Summary (Moderator) List papers by status
// @Description Without a status filter lists every paper; with status=submitted this is the claimable queue.
// @Tags Moderator - Review
// @Produce json
// @Param status query string false "Paper status filter" Enums(draft, submitted, under_review, change_requested, approved)
// @Success 200 {array} dto.PaperSummaryResponse
// @Router /moderator/papers [get]
func (c *ModerationController) Queue(ctx *gin.Context) {
	var status *string
	if raw := ctx.Query("status"); raw != "" {
		status = &raw
	}
	papers, err := c.paperService.ListPapers(status)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, papers)
}

// GetPaper godoc
// @Summary (Moderator) Get a paper with its questions for review
// @Tags Moderator - Review
// @Produce json
// @Param paper_id path int true "Paper ID"
// @Success 200 {object} dto.PaperResponse
// @Router /moderator/papers/{paper_id} [get]
func (c *ModerationController) GetPaper(ctx *gin.Context) {
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

// PaperStatus godoc
// @Summary (Moderator) Live moderation status of a paper
// @Tags Moderator - Review
// @Produce json
// @Param paper_id path int true "Paper ID"
// @Success 200 {object} dto.PaperStatusResponse
// @Router /moderator/papers/{paper_id}/status [get]
func (c *ModerationController) PaperStatus(ctx *gin.Context) {
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

// ClaimPaper godoc
// @Summary (Moderator) Claim a submitted paper for exclusive review
// @Description Exactly one moderator can hold the claim; a conflict returns 409 naming the holder.
// @Tags Moderator - Claims
// @Produce json
// @Param paper_id path int true "Paper ID"
// @Param moderator_id query int true "Moderator ID"
// @Success 200 {object} dto.ModerationRecordResponse
// @Failure 409 {object} dto.ErrorResponse "Already claimed"
// @Router /moderator/papers/{paper_id}/claim [post]
func (c *ModerationController) ClaimPaper(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	moderatorID, ok := controller.ActorID(ctx, "moderator_id")
	if !ok {
		return
	}
	record, err := c.claimService.ClaimPaper(paperID, moderatorID)
	if err != nil {
		log.Info().Err(err).Uint("paper_id", paperID).Uint("moderator_id", moderatorID).Msg("paper claim refused")
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, record)
}

// ApprovePaper godoc
// @Summary (Moderator) Approve a claimed paper
// @Description Any standing question-level rejection from this review cycle forces change_requested instead.
// @Tags Moderator - Review
// @Produce json
// @Param paper_id path int true "Paper ID"
// @Param moderator_id query int true "Moderator ID"
// @Success 200 {object} dto.PaperResponse
// @Failure 403 {object} dto.ErrorResponse "Claim not held"
// @Router /moderator/papers/{paper_id}/approve [post]
func (c *ModerationController) ApprovePaper(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	moderatorID, ok := controller.ActorID(ctx, "moderator_id")
	if !ok {
		return
	}
	paper, err := c.paperService.ApprovePaper(paperID, moderatorID, "")
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, paper)
}

// RejectPaper godoc
// @Summary (Moderator) Reject a claimed paper, requesting changes
// @Tags Moderator - Review
// @Accept json
// @Produce json
// @Param paper_id path int true "Paper ID"
// @Param moderator_id query int true "Moderator ID"
// @Param rejection body dto.RejectRequest true "Mandatory reviewer comments"
// @Success 200 {object} dto.PaperResponse
// @Failure 400 {object} dto.ErrorResponse "Missing comments"
// @Router /moderator/papers/{paper_id}/reject [post]
func (c *ModerationController) RejectPaper(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	moderatorID, ok := controller.ActorID(ctx, "moderator_id")
	if !ok {
		return
	}
	var req dto.RejectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body", Details: []string{err.Error()}})
		return
	}
	paper, err := c.paperService.RejectPaper(paperID, moderatorID, req.Comments)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, paper)
}

// ClaimQuestion godoc
// @Summary (Moderator) Claim one question of an already-claimed paper
// @Description Requires holding the paper-level claim first; question claims are sub-delegation, not an entry point.
// @Tags Moderator - Claims
// @Produce json
// @Param paper_id path int true "Paper ID"
// @Param question_id path int true "Question ID"
// @Param moderator_id query int true "Moderator ID"
// @Success 200 {object} dto.ModerationRecordResponse
// @Failure 403 {object} dto.ErrorResponse "Paper not claimed by moderator"
// @Failure 409 {object} dto.ErrorResponse "Already claimed"
// @Router /moderator/papers/{paper_id}/questions/{question_id}/claim [post]
func (c *ModerationController) ClaimQuestion(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	questionID, ok := controller.UintParam(ctx, "question_id")
	if !ok {
		return
	}
	moderatorID, ok := controller.ActorID(ctx, "moderator_id")
	if !ok {
		return
	}
	record, err := c.claimService.ClaimQuestion(paperID, questionID, moderatorID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, record)
}

// ApproveQuestion godoc
// @Summary (Moderator) Approve a claimed question
// @Tags Moderator - Review
// @Produce json
// @Param paper_id path int true "Paper ID"
// @Param question_id path int true "Question ID"
// @Param moderator_id query int true "Moderator ID"
// @Success 200 {object} dto.ModerationRecordResponse
// @Router /moderator/papers/{paper_id}/questions/{question_id}/approve [post]
func (c *ModerationController) ApproveQuestion(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	questionID, ok := controller.UintParam(ctx, "question_id")
	if !ok {
		return
	}
	moderatorID, ok := controller.ActorID(ctx, "moderator_id")
	if !ok {
		return
	}
	record, err := c.paperService.ApproveQuestion(paperID, questionID, moderatorID, "")
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, record)
}

// RejectQuestion godoc
// @Summary (Moderator) Reject a claimed question with comments
// @Tags Moderator - Review
// @Accept json
// @Produce json
// @Param paper_id path int true "Paper ID"
// @Param question_id path int true "Question ID"
// @Param moderator_id query int true "Moderator ID"
// @Param rejection body dto.RejectRequest true "Mandatory reviewer comments"
// @Success 200 {object} dto.ModerationRecordResponse
// @Router /moderator/papers/{paper_id}/questions/{question_id}/reject [post]
func (c *ModerationController) RejectQuestion(ctx *gin.Context) {
	paperID, ok := controller.UintParam(ctx, "paper_id")
	if !ok {
		return
	}
	questionID, ok := controller.UintParam(ctx, "question_id")
	if !ok {
		return
	}
	moderatorID, ok := controller.ActorID(ctx, "moderator_id")
	if !ok {
		return
	}
	var req dto.RejectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body", Details: []string{err.Error()}})
		return
	}
	record, err := c.paperService.RejectQuestion(paperID, questionID, moderatorID, req.Comments)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, record)
}

// ReleaseClaim godoc
// @Summary (Moderator) Release a held claim without resolving it
// @Description Releasing a paper claim requeues the paper and releases the moderator's question claims under it.
// @Tags Moderator - Claims
// @Accept json
// @Produce json
// @Param moderator_id query int true "Moderator ID"
// @Param release body dto.ReleaseClaimRequest true "Claim target"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse "Not the claim owner"
// @Router /moderator/claims/release [post]
func (c *ModerationController) ReleaseClaim(ctx *gin.Context) {
	moderatorID, ok := controller.ActorID(ctx, "moderator_id")
	if !ok {
		return
	}
	var req dto.ReleaseClaimRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := c.claimService.ReleaseClaim(req.TargetType, req.TargetID, moderatorID); err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "claim released"})
}

// MyClaims godoc
// @Summary (Moderator) List own moderation records
// @Tags Moderator - Claims
// @Produce json
// @Param moderator_id query int true "Moderator ID"
// @Param status query string false "Record status filter" Enums(claimed, approved, rejected, released)
// @Success 200 {array} dto.ModerationRecordResponse
// @Router /moderator/claims [get]
func (c *ModerationController) MyClaims(ctx *gin.Context) {
	moderatorID, ok := controller.ActorID(ctx, "moderator_id")
	if !ok {
		return
	}
	var status *string
	if raw := ctx.Query("status"); raw != "" {
		status = &raw
	}
	records, err := c.ledgerService.ClaimsByModerator(moderatorID, status)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, records)
}

// TargetRecords godoc
// @Summary (Moderator) Moderation history of a paper or question
// @Tags Moderator - Claims
// @Produce json
// @Param target_type query string true "Target type" Enums(paper, question)
// @Param target_id query int true "Target ID"
// @Success 200 {array} dto.ModerationRecordResponse
// @Router /moderator/records [get]
func (c *ModerationController) TargetRecords(ctx *gin.Context) {
	targetType := ctx.Query("target_type")
	if targetType != model.TargetTypePaper && targetType != model.TargetTypeQuestion {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "target_type must be paper or question"})
		return
	}
	targetID, ok := controller.UintQuery(ctx, "target_id")
	if !ok {
		return
	}
	records, err := c.ledgerService.RecordsFor(targetType, targetID)
	if err != nil {
		controller.WriteError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, records)
}
