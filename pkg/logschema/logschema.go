package logschema

// Log schema constants for eegcodec structured logs.
const (
	SchemaID    = "eegcodec.log.v1"
	FieldSchema = "log_schema"

	FieldTimestamp = "ts"
	FieldLevel     = "level"
	FieldMessage   = "msg"
	FieldLogger    = "logger"
	FieldCaller    = "caller"
	FieldStack     = "stack"

	FieldComponent = "component"
	FieldEvent     = "event"
	FieldResult    = "result"
	FieldError     = "error"

	// Per-frame codec fields.
	FieldFrameSize    = "frame_size"
	FieldKeepNumCoeff = "keep_num_coeff"
	FieldEncodedBytes = "encoded_bytes"
)
