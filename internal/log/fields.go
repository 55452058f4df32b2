package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldYear       = "year"
	FieldMonth      = "month"
	FieldDay        = "day"
	FieldMerchant   = "merchant"
	FieldCategory   = "category"
	FieldAmount     = "amount"
	FieldDueDay     = "due_day"
	FieldDaysUntil  = "days_until"
	FieldChargeID   = "charge_id"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentCharges   = "charges"
	ComponentStorage   = "storage"
	ComponentAMQP      = "amqp"
	ComponentScheduler = "scheduler"
	ComponentWorker    = "worker"
	ComponentChat      = "chat"
	ComponentCache     = "cache"
)

// Operations defines standard operation names
const (
	OpFetch    = "fetch"
	OpDerive   = "derive"
	OpList     = "list"
	OpPublish  = "publish"
	OpConsume  = "consume"
	OpValidate = "validate"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)
