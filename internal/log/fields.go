package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldRangeFrom  = "range_from"
	FieldRangeTo    = "range_to"
	FieldRecords    = "records"
	FieldSkipped    = "skipped"
	FieldDays       = "days"
	FieldSource     = "source"
)

// Components
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentDashboard = "dashboard"
	ComponentLoader    = "loader"
	ComponentStorage   = "storage"
	ComponentImport    = "import"
)

// Operations
const (
	OpLoad      = "load"
	OpAggregate = "aggregate"
	OpPreview   = "preview"
	OpImport    = "import"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
