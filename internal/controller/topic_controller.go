package controller

import (
	"errors"
	"learntrack_backend/internal/model"
	"learntrack_backend/internal/service"
	"learntrack_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// TopicController serves the learner-facing catalog: topics annotated with
// the caller's progress, contents with per-item completed flags. On any
// fetch failure the handler returns the error status and nothing else;
// fabricated progress numbers are worse than an error page.
type TopicController struct {
	CatalogService  *service.CatalogService
	ProgressService *service.ProgressService
	Aggregator      *service.AggregatorService
}

func NewTopicController(catalogService *service.CatalogService, progressService *service.ProgressService, aggregator *service.AggregatorService) *TopicController {
	return &TopicController{
		CatalogService:  catalogService,
		ProgressService: progressService,
		Aggregator:      aggregator,
	}
}

// ListTopics godoc
// @Summary List root topics with the caller's progress
// @Tags topics
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response
// @Router /topics [get]
func (c *TopicController) ListTopics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	roots, err := c.CatalogService.ListRootTopics()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	list := make([]gin.H, 0, len(roots))
	for _, root := range roots {
		progress, err := c.Aggregator.ComputeTopicProgress(claims.UserID, root.Topic.ID, true)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		list = append(list, gin.H{
			"id":              root.Topic.ID,
			"title":           root.Topic.Title,
			"description":     root.Topic.Description,
			"order":           root.Topic.Order,
			"total_items":     root.TotalItems,
			"subtopics_count": root.SubtopicsCount,
			"progress":        progress.Percentage,
		})
	}

	util.Success(ctx, list)
}

// GetTopic godoc
// @Summary Topic detail with subtopics, contents and completion flags
// @Tags topics
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "topic id"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /topics/{id} [get]
func (c *TopicController) GetTopic(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid topic id")
		return
	}
	topicID := uint(id)

	topic, err := c.CatalogService.GetTopic(topicID)
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	contents, err := c.contentsWithCompletion(claims.UserID, topic.Contents)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	subtopics := make([]gin.H, 0, len(topic.Subtopics))
	for _, sub := range topic.Subtopics {
		total, err := c.CatalogService.TotalItems(sub.ID)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		subtopics = append(subtopics, gin.H{
			"id":          sub.ID,
			"title":       sub.Title,
			"description": sub.Description,
			"order":       sub.Order,
			"total_items": total,
		})
	}

	progress, err := c.Aggregator.ComputeTopicProgress(claims.UserID, topicID, true)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"id":          topic.ID,
		"title":       topic.Title,
		"description": topic.Description,
		"order":       topic.Order,
		"total_items": progress.TotalCount,
		"progress":    progress.Percentage,
		"subtopics":   subtopics,
		"contents":    contents,
	})
}

// ListContents godoc
// @Summary Contents of a topic with the caller's completion flags
// @Tags topics
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "topic id"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /topics/{id}/contents [get]
func (c *TopicController) ListContents(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid topic id")
		return
	}

	contents, err := c.CatalogService.ListContents(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	list, err := c.contentsWithCompletion(claims.UserID, contents)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, list)
}

func (c *TopicController) contentsWithCompletion(userID uint, contents []model.Content) ([]gin.H, error) {
	ids := make([]uint, 0, len(contents))
	for _, content := range contents {
		ids = append(ids, content.ID)
	}

	completionMap, err := c.ProgressService.GetCompletionMap(userID, ids)
	if err != nil {
		return nil, err
	}

	list := make([]gin.H, 0, len(contents))
	for _, content := range contents {
		list = append(list, gin.H{
			"id":           content.ID,
			"title":        content.Title,
			"content_type": content.ContentType,
			"url":          content.URL,
			"description":  content.Description,
			"order":        content.Order,
			"completed":    completionMap[content.ID],
		})
	}
	return list, nil
}
