package logging

const (
	// FieldComponent is the structured logging key for component names.
	FieldComponent = "component"
	// FieldCorrelationID is the structured logging key for lookup correlation identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldEventType names the event a record describes (e.g. kodi_request_failed).
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step for an operator reading a warning.
	FieldErrorHint = "error_hint"
	// FieldImpact describes the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldQuery is the structured logging key for the text being looked up.
	FieldQuery = "query"
	// FieldPartition is the structured logging key for the library partition (audio, video).
	FieldPartition = "partition"
	// FieldMethod is the structured logging key for JSON-RPC method names.
	FieldMethod = "method"
)
