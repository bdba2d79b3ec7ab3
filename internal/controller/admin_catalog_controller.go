package controller

import (
	"errors"
	"learntrack_backend/internal/model"
	"learntrack_backend/internal/service"
	"learntrack_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// AdminCatalogController is the administrator's CRUD surface over the
// catalog. Authorization (admin role) is enforced by the route group; the
// catalog service still rejects structurally invalid input on its own.
type AdminCatalogController struct {
	CatalogService *service.CatalogService
}

func NewAdminCatalogController(catalogService *service.CatalogService) *AdminCatalogController {
	return &AdminCatalogController{CatalogService: catalogService}
}

// swagger:model CreateTopicRequest
type CreateTopicRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	Parent      *uint  `json:"parent"`
}

// swagger:model UpdateTopicRequest
type UpdateTopicRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
	// Parent is applied only when present in the payload; an explicit null
	// promotes the topic to a root.
	Parent    *uint `json:"parent"`
	HasParent bool  `json:"-"`
}

// swagger:model CreateContentRequest
type CreateContentRequest struct {
	TopicID     uint   `json:"topic_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
	URL         string `json:"url" binding:"required,url"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// swagger:model UpdateContentRequest
type UpdateContentRequest struct {
	TopicID     *uint   `json:"topic_id"`
	Title       *string `json:"title"`
	ContentType *string `json:"content_type"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`
}

func (c *AdminCatalogController) mapCatalogError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrTopicNotFound), errors.Is(err, util.ErrContentNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrInvalidParent):
		util.BadRequest(ctx, util.ErrInvalidParent.Error())
	case errors.Is(err, util.ErrInvalidTopic):
		util.BadRequest(ctx, util.ErrInvalidTopic.Error())
	case errors.Is(err, util.ErrInvalidContentType):
		util.BadRequest(ctx, util.ErrInvalidContentType.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// ListTopics godoc
// @Summary List every topic for catalog management
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Topic}
// @Router /admin/topics [get]
func (c *AdminCatalogController) ListTopics(ctx *gin.Context) {
	topics, err := c.CatalogService.ListAllTopics()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	list := make([]gin.H, 0, len(topics))
	for _, topic := range topics {
		total, err := c.CatalogService.TotalItems(topic.ID)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		list = append(list, gin.H{
			"id":          topic.ID,
			"title":       topic.Title,
			"description": topic.Description,
			"order":       topic.Order,
			"parent":      topic.ParentID,
			"total_items": total,
			"createdAt":   topic.CreatedAt,
			"updatedAt":   topic.UpdatedAt,
		})
	}
	util.Success(ctx, list)
}

// CreateTopic godoc
// @Summary Create a topic
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateTopicRequest true "topic"
// @Success 201 {object} util.Response{data=model.Topic}
// @Failure 400 {object} util.Response "invalid parent"
// @Router /admin/topics [post]
func (c *AdminCatalogController) CreateTopic(ctx *gin.Context) {
	var req CreateTopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic, err := c.CatalogService.CreateTopic(req.Title, req.Description, req.Order, req.Parent)
	if err != nil {
		c.mapCatalogError(ctx, err)
		return
	}
	util.Created(ctx, topic)
}

// GetTopic godoc
// @Summary Topic detail for catalog management
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "topic id"
// @Success 200 {object} util.Response{data=model.Topic}
// @Failure 404 {object} util.Response
// @Router /admin/topics/{id} [get]
func (c *AdminCatalogController) GetTopic(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid topic id")
		return
	}

	topic, err := c.CatalogService.GetTopic(uint(id))
	if err != nil {
		c.mapCatalogError(ctx, err)
		return
	}
	util.Success(ctx, topic)
}

// UpdateTopic godoc
// @Summary Update a topic
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "topic id"
// @Param body body UpdateTopicRequest true "fields to update"
// @Success 200 {object} util.Response{data=model.Topic}
// @Failure 400 {object} util.Response "cyclic or dangling parent"
// @Failure 404 {object} util.Response
// @Router /admin/topics/{id} [put]
func (c *AdminCatalogController) UpdateTopic(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid topic id")
		return
	}

	// Bind into a raw map first to tell "parent absent" apart from
	// "parent: null".
	var raw map[string]interface{}
	if err := ctx.ShouldBindJSON(&raw); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	input := service.UpdateTopicInput{}
	if v, ok := raw["title"].(string); ok {
		input.Title = &v
	}
	if v, ok := raw["description"].(string); ok {
		input.Description = &v
	}
	if v, ok := raw["order"].(float64); ok {
		o := int(v)
		input.Order = &o
	}
	if _, present := raw["parent"]; present {
		input.SetParent = true
		if v, ok := raw["parent"].(float64); ok {
			p := uint(v)
			input.ParentID = &p
		}
	}

	topic, err := c.CatalogService.UpdateTopic(uint(id), input)
	if err != nil {
		c.mapCatalogError(ctx, err)
		return
	}
	util.Success(ctx, topic)
}

// DeleteTopic godoc
// @Summary Delete a topic and its whole subtree
// @Description Descendant subtopics, their contents and ledger entries are removed together
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "topic id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /admin/topics/{id} [delete]
func (c *AdminCatalogController) DeleteTopic(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid topic id")
		return
	}

	if err := c.CatalogService.DeleteTopic(uint(id)); err != nil {
		c.mapCatalogError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "topic deleted"})
}

// ListContent godoc
// @Summary List content, optionally filtered by topic
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param topic_id query int false "owning topic"
// @Success 200 {object} util.Response{data=[]model.Content}
// @Router /admin/content [get]
func (c *AdminCatalogController) ListContent(ctx *gin.Context) {
	var topicID *uint
	if v := ctx.Query("topic_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			util.BadRequest(ctx, "invalid topic_id")
			return
		}
		id := uint(parsed)
		topicID = &id
	}

	contents, err := c.CatalogService.ListAllContent(topicID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, contents)
}

// CreateContent godoc
// @Summary Create a content item
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateContentRequest true "content"
// @Success 201 {object} util.Response{data=model.Content}
// @Failure 400 {object} util.Response "unknown topic or content type"
// @Router /admin/content [post]
func (c *AdminCatalogController) CreateContent(ctx *gin.Context) {
	var req CreateContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	content, err := c.CatalogService.CreateContent(
		req.TopicID,
		req.Title,
		model.ContentType(req.ContentType),
		req.URL,
		req.Description,
		req.Order,
	)
	if err != nil {
		c.mapCatalogError(ctx, err)
		return
	}
	util.Created(ctx, content)
}

// GetContent godoc
// @Summary Content detail
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "content id"
// @Success 200 {object} util.Response{data=model.Content}
// @Failure 404 {object} util.Response
// @Router /admin/content/{id} [get]
func (c *AdminCatalogController) GetContent(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid content id")
		return
	}

	content, err := c.CatalogService.GetContent(uint(id))
	if err != nil {
		c.mapCatalogError(ctx, err)
		return
	}
	util.Success(ctx, content)
}

// UpdateContent godoc
// @Summary Update a content item
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "content id"
// @Param body body UpdateContentRequest true "fields to update"
// @Success 200 {object} util.Response{data=model.Content}
// @Failure 404 {object} util.Response
// @Router /admin/content/{id} [put]
func (c *AdminCatalogController) UpdateContent(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid content id")
		return
	}

	var req UpdateContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	input := service.UpdateContentInput{
		TopicID:     req.TopicID,
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Order:       req.Order,
	}
	if req.ContentType != nil {
		ct := model.ContentType(*req.ContentType)
		input.ContentType = &ct
	}

	content, err := c.CatalogService.UpdateContent(uint(id), input)
	if err != nil {
		c.mapCatalogError(ctx, err)
		return
	}
	util.Success(ctx, content)
}

// DeleteContent godoc
// @Summary Delete a content item
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "content id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /admin/content/{id} [delete]
func (c *AdminCatalogController) DeleteContent(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid content id")
		return
	}

	if err := c.CatalogService.DeleteContent(uint(id)); err != nil {
		c.mapCatalogError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "content deleted"})
}
