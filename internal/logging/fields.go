package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for the per-run identifier.
	FieldRunID = "run_id"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step to the operator.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldProgressStage names the pipeline step being reported.
	FieldProgressStage = "progress_stage"
	// FieldProgressStep is the 1-based step number within the pipeline.
	FieldProgressStep = "progress_step"
	// FieldProgressTotal is the number of steps in the pipeline.
	FieldProgressTotal = "progress_total"
	// FieldAlert flags warnings or anomalies that should stand out in structured logs.
	FieldAlert = "alert"
)
