package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"lumbertrace/internal/core/apperror"
	"lumbertrace/internal/domain/bom"
	"lumbertrace/internal/domain/material"
	"lumbertrace/internal/domain/supplier"
	"lumbertrace/internal/domain/traceability"
	"lumbertrace/internal/infrastructure/http/v1/dto"
	"lumbertrace/internal/infrastructure/render"
	"lumbertrace/pkg/logger"
)

// SupplierLookup finds a supplier by id.
type SupplierLookup interface {
	GetByID(ctx context.Context, id string) (*supplier.Supplier, error)
}

// MaterialHandler serves the material endpoints beyond plain CRUD.
type MaterialHandler struct {
	*BaseHandler
	materials *material.Service
	suppliers SupplierLookup
	trace     *traceability.Service
}

// NewMaterialHandler creates a new material handler.
func NewMaterialHandler(base *BaseHandler, materials *material.Service, suppliers SupplierLookup, trace *traceability.Service) *MaterialHandler {
	return &MaterialHandler{
		BaseHandler: base,
		materials:   materials,
		suppliers:   suppliers,
		trace:       trace,
	}
}

// Records returns the CRUD handler for materials.
func (h *MaterialHandler) Records() *RecordHandler[*material.Material, dto.MaterialRequest] {
	return NewRecordHandler(h.BaseHandler, RecordHandlerConfig[*material.Material, dto.MaterialRequest]{
		Service:    h.materials,
		EntityName: "material",
		List:       h.list,
		ToEntity: func(req *dto.MaterialRequest, id string) *material.Material {
			return req.ToEntity(id)
		},
	})
}

func (h *MaterialHandler) list(c *gin.Context) (dto.ListResponse, error) {
	var q dto.MaterialListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return dto.ListResponse{}, apperror.NewValidation("invalid query parameters").WithDetail("error", err.Error())
	}

	f, err := q.ToFilter(h.Location)
	if err != nil {
		return dto.ListResponse{}, err
	}

	result, err := h.materials.List(c.Request.Context(), material.ListFilter{ListFilter: f, State: q.State})
	if err != nil {
		return dto.ListResponse{}, err
	}
	return dto.FromListResult(result), nil
}

// AddComponent handles POST /materials/:id/components.
func (h *MaterialHandler) AddComponent(c *gin.Context) {
	var req dto.ScanRequest
	if !h.BindJSON(c, &req) {
		return
	}

	m, err := h.materials.AddComponent(c.Request.Context(), c.Param("id"), req.Payload)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, m)
}

// RemoveComponent handles DELETE /materials/:id/components/:componentId.
func (h *MaterialHandler) RemoveComponent(c *gin.Context) {
	m, err := h.materials.RemoveComponent(c.Request.Context(), c.Param("id"), c.Param("componentId"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, m)
}

// BOM handles GET /materials/:id/bom.
func (h *MaterialHandler) BOM(c *gin.Context) {
	res, err := h.trace.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewBOMResponse(res.Root, res.Components, res.Groups, res.Suppliers))
}

// Traceability handles GET /materials/:id/traceability.
func (h *MaterialHandler) Traceability(c *gin.Context) {
	report, err := h.trace.BuildReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}

// TraceabilityPDF handles GET /materials/:id/traceability.pdf.
func (h *MaterialHandler) TraceabilityPDF(c *gin.Context) {
	ctx := c.Request.Context()

	report, err := h.trace.BuildReport(ctx, c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	var buf bytes.Buffer
	if err := render.ReportPDF(&buf, report); err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}

	name := render.ReportFileName(report.Material.ID, report.GeneratedAt)
	logger.Info(ctx, "traceability pdf generated", "material_id", report.Material.ID, "bytes", buf.Len())

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// Label handles GET /materials/:id/label.png.
func (h *MaterialHandler) Label(c *gin.Context) {
	ctx := c.Request.Context()

	m, err := h.materials.GetByID(ctx, c.Param("id"))
	if err != nil {
		h.Error(c, err)
		return
	}

	var known []*supplier.Supplier
	if m.SupplierID != "" {
		s, err := h.suppliers.GetByID(ctx, m.SupplierID)
		switch {
		case err == nil:
			known = append(known, s)
		case !apperror.IsNotFound(err):
			h.Error(c, err)
			return
		}
	}
	supplierName := bom.NewSupplierDirectory(known).Name(m.SupplierID)

	var buf bytes.Buffer
	if err := render.Label(&buf, m, supplierName); err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// Scan handles POST /scan: resolves a scanned label to its material.
func (h *MaterialHandler) Scan(c *gin.Context) {
	var req dto.ScanRequest
	if !h.BindJSON(c, &req) {
		return
	}

	m, err := h.materials.ResolveScan(c.Request.Context(), req.Payload)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, m)
}
