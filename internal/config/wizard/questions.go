package wizard

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/charmbracelet/huh"

	"github.com/imamik/slsfw/internal/config"
)

var functionNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]{0,59}$`)

// runFunctionGroup prompts for framework, function name and regions.
func runFunctionGroup(ctx context.Context, result *Result) error {
	result.Framework = config.DefaultFramework
	result.Regions = []string{config.DefaultRegion}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Framework").
				Description("Web framework the function serves").
				Options(Frameworks...).
				Value(&result.Framework),
			huh.NewInput().
				Title("Function Name (Optional)").
				Description("Leave empty to generate <framework>_component_<random>").
				Value(&result.FunctionName).
				Validate(validateFunctionName),
			huh.NewMultiSelect[string]().
				Title("Regions").
				Description("The function and gateway are deployed to every selected region").
				Options(RegionsToOptions()...).
				Value(&result.Regions).
				Validate(validateRegions),
		).Title("Function"),
	).RunWithContext(ctx)
}

// runRuntimeGroup prompts for runtime settings.
func runRuntimeGroup(ctx context.Context, result *Result) error {
	result.Runtime = config.DefaultRuntime
	result.Handler = frameworkHandler(result.Framework)
	memory := strconv.Itoa(config.DefaultMemorySize)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Runtime").
				Options(Runtimes...).
				Value(&result.Runtime),
			huh.NewInput().
				Title("Handler").
				Value(&result.Handler),
			huh.NewInput().
				Title("Memory Size (MB)").
				Value(&memory).
				Validate(validateMemorySize),
		).Title("Runtime"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	result.MemorySize, _ = strconv.Atoi(strings.TrimSpace(memory))
	return nil
}

// runGatewayGroup prompts for API gateway settings.
func runGatewayGroup(ctx context.Context, result *Result) error {
	result.Protocols = []string{config.DefaultProtocol}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Protocols").
				Options(Protocols...).
				Value(&result.Protocols),
			huh.NewConfirm().
				Title("Enable CORS").
				Value(&result.EnableCORS),
		).Title("API Gateway"),
	).RunWithContext(ctx)
}

// runDomainGroup prompts for an optional custom domain and its record line.
func runDomainGroup(ctx context.Context, result *Result) error {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Custom Domain (Optional)").
				Description("A CNAME record is created for it in every region").
				Placeholder("api.example.com (or leave empty)").
				Value(&result.CustomDomain).
				Validate(validateDomain),
		).Title("Custom Domain"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	result.CustomDomain = strings.TrimSpace(result.CustomDomain)
	if result.CustomDomain == "" {
		return nil
	}

	result.RecordLine = "默认"
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Record Line").
				Description("DNS resolution line of the CNAME records").
				Options(RecordLines...).
				Value(&result.RecordLine),
		).Title("DNS"),
	).RunWithContext(ctx)
}

// validateFunctionName accepts an empty name or a valid function name.
func validateFunctionName(s string) error {
	if s == "" || functionNameRegex.MatchString(s) {
		return nil
	}
	return errFunctionNameInvalid
}

func validateRegions(regions []string) error {
	if len(regions) == 0 {
		return errRegionsRequired
	}
	return nil
}

// validateDomain accepts an empty domain or a dotted DNS name.
func validateDomain(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !strings.Contains(s, ".") || !govalidator.IsDNSName(s) {
		return errDomainInvalid
	}
	return nil
}

func validateMemorySize(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 64 || n > 3072 || n%64 != 0 {
		return errMemorySizeInvalid
	}
	return nil
}
