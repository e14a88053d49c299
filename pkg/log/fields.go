package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldRoute     = "route"
	FieldStatus    = "status"
	FieldLatency   = "latency_ms"
	FieldClientIP  = "client_ip"

	// Domain
	FieldCustomerID  = "customer_id"
	FieldOwner       = "owner"
	FieldOwnerID     = "owner_id"
	FieldMetafieldID = "metafield_id"
	FieldListName    = "list_name"
	FieldProductID   = "product_id"
	FieldQuery       = "query"
	FieldCacheKey    = "cache_key"
	FieldAttempt     = "attempt"

	// Service
	FieldService = "service"

	// Log type (for audit log)
	FieldLogType = "log_type"
	LogTypeAudit = "audit"
)
