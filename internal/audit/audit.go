package audit

import (
	"context"

	"github.com/weiawesome/wes-storefront-gateway/pkg/log"
)

// Audit actions of the gateway.
const (
	ActionCustomerCreate  = "customer.create"
	ActionCustomerUpdate  = "customer.update"
	ActionCustomerDelete  = "customer.delete"
	ActionMetafieldCreate = "metafield.create"
	ActionMetafieldUpdate = "metafield.update"
	ActionMetafieldDelete = "metafield.delete"
	ActionMetafieldSet    = "metafield.set"
	ActionListCreate      = "list.create"
	ActionListDelete      = "list.delete"
	ActionListAddItem     = "list.add_product"
	ActionListRemoveItem  = "list.remove_product"
)

// Field constants for audit entries.
const (
	FieldAction   = "action"
	FieldTargetID = "target_id"
	FieldDetail   = "detail"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action string, targetID string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(FieldTargetID, targetID).
		Msg(msg)
}

// LogWithDetail emits an audit log with extra detail field.
func LogWithDetail(ctx context.Context, action string, targetID string, detail string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(FieldTargetID, targetID).
		Str(FieldDetail, detail).
		Msg(msg)
}
