package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errFunctionNameInvalid = errors.New("function name must start with a letter and contain only letters, digits, hyphens or underscores (max 60)")
	errRegionsRequired     = errors.New("select at least one region")
	errDomainInvalid       = errors.New("custom domain must be a valid DNS name such as api.example.com")
	errMemorySizeInvalid   = errors.New("memory size must be a multiple of 64 between 64 and 3072")
)
