package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Detail     string
	Suggestion string
}

// Error codes.
const (
	CodeConfigParse     = "E120"
	CodeConfigInvalid   = "E121"
	CodeInvalidPort     = "E122"
	CodeConfigNotFound  = "E141"
	CodePreviewFailed   = "E160"
	CodeInvalidToastReq = "E161"
)

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	CodeConfigParse: {
		Category:   CategoryConfig,
		Message:    "Invalid configuration file",
		Detail:     "The toast configuration file could not be parsed.",
		Suggestion: "Check the file syntax. JSON, YAML and TOML are supported, chosen by extension.",
	},
	CodeConfigInvalid: {
		Category:   CategoryConfig,
		Message:    "Invalid configuration value",
		Detail:     "A configuration field has a value outside its allowed range.",
		Suggestion: "Durations are in milliseconds and must not be negative.",
	},
	CodeInvalidPort: {
		Category:   CategoryConfig,
		Message:    "Invalid port number",
		Detail:     "The preview port must be between 1 and 65535.",
		Suggestion: "Use a port like 3100, or pass --port.",
	},
	CodeConfigNotFound: {
		Category:   CategoryConfig,
		Message:    "Configuration file not found",
		Detail:     "No toast.json, toast.yaml, toast.yml or toast.toml was found.",
		Suggestion: "Run without --config to use defaults, or create toast.json.",
	},
	CodePreviewFailed: {
		Category:   CategoryServer,
		Message:    "Preview server failed",
		Detail:     "The live preview server could not start or stopped unexpectedly.",
		Suggestion: "Check that the port is free, or pick another with --port.",
	},
	CodeInvalidToastReq: {
		Category: CategoryValidation,
		Message:  "Invalid toast request",
		Detail:   "The request body must be a JSON object with a non-empty message.",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
