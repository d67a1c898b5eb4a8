package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"github.com/tk-rocha/garcom-api/pkg/apperror"
)

// GetOperator extracts the operator set by the operator middleware
func GetOperator(c *gin.Context) entity.Operator {
	op := entity.Operator{}
	if id, exists := c.Get("operator_id"); exists {
		op.ID, _ = id.(string)
	}
	if name, exists := c.Get("operator_name"); exists {
		op.Name, _ = name.(string)
	}
	return op
}

// contextKeyParam parses the :context path parameter
func contextKeyParam(c *gin.Context) (entity.ContextKey, error) {
	key, err := entity.ParseContextKey(c.Param("context"))
	if err != nil {
		return key, apperror.NewValidationError(err.Error())
	}
	return key, nil
}

// parseAmount parses a decimal string from a request body
func parseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperror.NewValidationError("invalid amount: " + raw)
	}
	return d, nil
}
