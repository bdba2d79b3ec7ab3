package controller

import (
	"errors"
	"learntrack_backend/internal/service"
	"learntrack_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
	Aggregator      *service.AggregatorService
}

func NewProgressController(progressService *service.ProgressService, aggregator *service.AggregatorService) *ProgressController {
	return &ProgressController{
		ProgressService: progressService,
		Aggregator:      aggregator,
	}
}

// swagger:model UpdateProgressRequest
type UpdateProgressRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// UpdateProgress godoc
// @Summary Toggle completion for a content item
// @Description Upserts the caller's ledger entry and returns it with the fresh overall rollup
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "content id"
// @Param body body UpdateProgressRequest true "completion flag"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "unknown content"
// @Router /progress/content/{id} [post]
func (c *ProgressController) UpdateProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid content id")
		return
	}

	var req UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.ProgressService.SetCompletion(claims.UserID, uint(id), *req.Completed)
	if err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	// Recompute so the client never renders a stale percentage after the
	// toggle.
	overall, err := c.Aggregator.ComputeOverallProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"progress": entry,
		"overall":  overall,
	})
}

// GetOverall godoc
// @Summary The caller's rollup across the whole catalog
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.OverallProgress}
// @Router /progress/overall [get]
func (c *ProgressController) GetOverall(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	overall, err := c.Aggregator.ComputeOverallProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, overall)
}
