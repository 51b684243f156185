package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Render options.
	FieldPretty         = "pretty"
	FieldSourceIndices  = "source_indices"
	FieldDetectLanguage = "detect_language"
	FieldStaged         = "staged"
	FieldJobs           = "jobs"

	// Block compiler fields.
	FieldKind   = "kind"
	FieldOffset = "offset"
	FieldIndent = "indent"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesRendered   = "files_rendered"
	FieldFilesFailed     = "files_failed"
	FieldBlocks          = "blocks"
	FieldBytes           = "bytes"
	FieldDuration        = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
