package context

import (
	"context"
)

// Operator is the mill operator authenticated for the current request.
type Operator struct {
	Username  string
	SessionID string
}

type operatorContextKey struct{}

// WithOperator adds Operator to context.
func WithOperator(ctx context.Context, op *Operator) context.Context {
	return context.WithValue(ctx, operatorContextKey{}, op)
}

// GetOperator returns Operator from context.
func GetOperator(ctx context.Context) *Operator {
	if v, ok := ctx.Value(operatorContextKey{}).(*Operator); ok {
		return v
	}
	return nil
}

// GetOperatorName returns the operator username or empty string.
func GetOperatorName(ctx context.Context) string {
	if op := GetOperator(ctx); op != nil {
		return op.Username
	}
	return ""
}
