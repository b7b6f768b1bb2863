package handlers

import (
	"github.com/gin-gonic/gin"

	"lumbertrace/internal/core/apperror"
	"lumbertrace/internal/domain/supplier"
	"lumbertrace/internal/infrastructure/http/v1/dto"
)

// NewSupplierHandler creates the CRUD handler for suppliers.
func NewSupplierHandler(base *BaseHandler, service *supplier.Service) *RecordHandler[*supplier.Supplier, dto.SupplierRequest] {
	list := func(c *gin.Context) (dto.ListResponse, error) {
		var q dto.ListQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			return dto.ListResponse{}, apperror.NewValidation("invalid query parameters").WithDetail("error", err.Error())
		}
		f, err := q.ToFilter(base.Location)
		if err != nil {
			return dto.ListResponse{}, err
		}
		result, err := service.List(c.Request.Context(), f)
		if err != nil {
			return dto.ListResponse{}, err
		}
		return dto.FromListResult(result), nil
	}

	return NewRecordHandler(base, RecordHandlerConfig[*supplier.Supplier, dto.SupplierRequest]{
		Service:    service,
		EntityName: "supplier",
		List:       list,
		ToEntity: func(req *dto.SupplierRequest, id string) *supplier.Supplier {
			return req.ToEntity(id)
		},
	})
}
