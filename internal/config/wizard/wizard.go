package wizard

import (
	"context"
	"fmt"
)

// Result holds all the answers from the interactive wizard.
type Result struct {
	Framework    string
	FunctionName string // empty lets the normalizer generate one
	Regions      []string
	Runtime      string
	Handler      string
	MemorySize   int
	Timeout      int

	Protocols  []string
	EnableCORS bool

	// Custom domain (optional)
	CustomDomain string
	RecordLine   string
}

// RunWizard runs the interactive input wizard. The context is used for
// cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context) (*Result, error) {
	result := &Result{}

	if err := runFunctionGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("function: %w", err)
	}

	if err := runRuntimeGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("runtime: %w", err)
	}

	if err := runGatewayGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("gateway: %w", err)
	}

	if err := runDomainGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("custom domain: %w", err)
	}

	return result, nil
}
