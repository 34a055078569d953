package controller

import (
	"errors"

	"career_compass_backend/internal/model"
	"career_compass_backend/internal/service"
	"career_compass_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	Service *service.AssessmentService
}

func NewAssessmentController(svc *service.AssessmentService) *AssessmentController {
	return &AssessmentController{Service: svc}
}

// respondError maps domain errors onto the HTTP surface.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrRunNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrUnknownSection),
		errors.Is(err, util.ErrUnknownQuestion),
		errors.Is(err, util.ErrInvalidResponse),
		errors.Is(err, util.ErrIndexOutOfRange):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrSectionNotActive),
		errors.Is(err, util.ErrOutOfOrderSection),
		errors.Is(err, util.ErrSectionFinalized),
		errors.Is(err, util.ErrSectionIncomplete),
		errors.Is(err, util.ErrPrematureCompletion):
		util.Conflict(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary Start an assessment run
// @Tags assessment
// @Produce json
// @Success 201 {object} util.Response{data=service.RunResponse}
// @Router /api/assessment/runs [post]
func (c *AssessmentController) StartRun(ctx *gin.Context) {
	util.Created(ctx, c.Service.StartRun())
}

// @Summary Get run state
// @Tags assessment
// @Produce json
// @Param id path string true "run id"
// @Success 200 {object} util.Response{data=service.RunResponse}
// @Failure 404 {object} util.Response
// @Router /api/assessment/runs/{id} [get]
func (c *AssessmentController) GetRun(ctx *gin.Context) {
	resp, err := c.Service.GetRun(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary Discard a run
// @Tags assessment
// @Produce json
// @Param id path string true "run id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/assessment/runs/{id} [delete]
func (c *AssessmentController) DiscardRun(ctx *gin.Context) {
	if err := c.Service.DiscardRun(ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Start a section
// @Tags assessment
// @Produce json
// @Param id path string true "run id"
// @Param section path string true "section id"
// @Success 200 {object} util.Response{data=service.SectionResponse}
// @Failure 409 {object} util.Response
// @Router /api/assessment/runs/{id}/sections/{section}/start [post]
func (c *AssessmentController) StartSection(ctx *gin.Context) {
	resp, err := c.Service.StartSection(ctx.Param("id"), model.SectionID(ctx.Param("section")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary Get the question under the cursor
// @Tags assessment
// @Produce json
// @Param id path string true "run id"
// @Success 200 {object} util.Response{data=service.QuestionResponse}
// @Failure 409 {object} util.Response
// @Router /api/assessment/runs/{id}/question [get]
func (c *AssessmentController) ActiveQuestion(ctx *gin.Context) {
	resp, err := c.Service.ActiveQuestion(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary Submit an answer
// @Tags assessment
// @Accept json
// @Produce json
// @Param id path string true "run id"
// @Param body body service.SubmitAnswerRequest true "response"
// @Success 200 {object} util.Response{data=service.SubmitAnswerResponse}
// @Failure 400 {object} util.Response
// @Router /api/assessment/runs/{id}/answers [post]
func (c *AssessmentController) SubmitAnswer(ctx *gin.Context) {
	var req service.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	resp, err := c.Service.SubmitAnswer(ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary Jump to a question
// @Tags assessment
// @Accept json
// @Produce json
// @Param id path string true "run id"
// @Param body body service.JumpRequest true "target index"
// @Success 200 {object} util.Response{data=service.QuestionResponse}
// @Failure 400 {object} util.Response
// @Router /api/assessment/runs/{id}/jump [post]
func (c *AssessmentController) JumpTo(ctx *gin.Context) {
	var req service.JumpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	resp, err := c.Service.JumpTo(ctx.Param("id"), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// @Summary Finalize a section
// @Tags assessment
// @Produce json
// @Param id path string true "run id"
// @Param section path string true "section id"
// @Success 200 {object} util.Response{data=model.SectionResult}
// @Failure 409 {object} util.Response
// @Router /api/assessment/runs/{id}/sections/{section}/finalize [post]
func (c *AssessmentController) FinalizeSection(ctx *gin.Context) {
	result, err := c.Service.FinalizeSection(ctx.Param("id"), model.SectionID(ctx.Param("section")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Get the recommendation
// @Tags assessment
// @Produce json
// @Param id path string true "run id"
// @Success 200 {object} util.Response{data=model.Recommendation}
// @Failure 409 {object} util.Response
// @Router /api/assessment/runs/{id}/recommendation [get]
func (c *AssessmentController) Recommendation(ctx *gin.Context) {
	rec, err := c.Service.Recommendation(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, rec)
}

// @Summary List sections and questions
// @Tags assessment
// @Produce json
// @Success 200 {object} util.Response{data=[]service.SectionResponse}
// @Router /api/assessment/sections [get]
func (c *AssessmentController) Sections(ctx *gin.Context) {
	util.Success(ctx, c.Service.Sections())
}
