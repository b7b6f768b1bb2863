package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"lumbertrace/internal/domain"
	"lumbertrace/internal/infrastructure/http/v1/dto"
	"lumbertrace/pkg/logger"
)

// RecordService is the part of domain.RecordService the handlers use.
type RecordService[T domain.Entity] interface {
	GetByID(ctx context.Context, id string) (T, error)
	Save(ctx context.Context, e T) (T, error)
	Delete(ctx context.Context, id string) error
}

// RecordHandler provides generic CRUD handlers for materials and suppliers.
type RecordHandler[T domain.Entity, Req any] struct {
	*BaseHandler
	service    RecordService[T]
	entityName string

	list     func(c *gin.Context) (dto.ListResponse, error)
	toEntity func(req *Req, id string) T
}

// RecordHandlerConfig configures the record handler.
type RecordHandlerConfig[T domain.Entity, Req any] struct {
	Service    RecordService[T]
	EntityName string

	// List answers GET on the collection.
	List func(c *gin.Context) (dto.ListResponse, error)

	// ToEntity maps a request body to an entity with the given id.
	ToEntity func(req *Req, id string) T
}

// NewRecordHandler creates a new record handler.
func NewRecordHandler[T domain.Entity, Req any](base *BaseHandler, cfg RecordHandlerConfig[T, Req]) *RecordHandler[T, Req] {
	return &RecordHandler[T, Req]{
		BaseHandler: base,
		service:     cfg.Service,
		entityName:  cfg.EntityName,
		list:        cfg.List,
		toEntity:    cfg.ToEntity,
	}
}

// List handles GET /{entity}.
func (h *RecordHandler[T, Req]) List(c *gin.Context) {
	resp, err := h.list(c)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, resp)
}

// Get handles GET /{entity}/:id.
func (h *RecordHandler[T, Req]) Get(c *gin.Context) {
	e, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, e)
}

// Create handles POST /{entity}. A body without id creates a new record.
func (h *RecordHandler[T, Req]) Create(c *gin.Context) {
	var req Req
	if !h.BindJSON(c, &req) {
		return
	}

	saved, err := h.service.Save(c.Request.Context(), h.toEntity(&req, ""))
	if err != nil {
		h.Error(c, err)
		return
	}

	logger.Info(c.Request.Context(), "record created", "entity", h.entityName, "id", saved.Meta().ID)
	h.Created(c, saved)
}

// Update handles PUT /{entity}/:id. Unknown ids are created under that id.
func (h *RecordHandler[T, Req]) Update(c *gin.Context) {
	var req Req
	if !h.BindJSON(c, &req) {
		return
	}

	saved, err := h.service.Save(c.Request.Context(), h.toEntity(&req, c.Param("id")))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, saved)
}

// Delete handles DELETE /{entity}/:id.
func (h *RecordHandler[T, Req]) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.Error(c, err)
		return
	}

	logger.Info(c.Request.Context(), "record deleted", "entity", h.entityName, "id", c.Param("id"))
	h.NoContent(c)
}
