package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/imamik/slsfw/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	isInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	wizardFileExists       = wizard.FileExists
	wizardConfirmOverwrite = wizard.ConfirmOverwrite
	wizardRunWizard        = wizard.RunWizard
	wizardWriteInputs      = wizard.WriteInputs
)

// ErrNotInteractive is returned by Init when stdin is not a terminal.
var ErrNotInteractive = errors.New("init needs an interactive terminal; write serverless.yml by hand instead")

// Init runs the inputs wizard and writes the result to outputPath.
func Init(ctx context.Context, outputPath string) error {
	if !isInteractive() {
		return ErrNotInteractive
	}

	if wizardFileExists(outputPath) {
		ok, err := wizardConfirmOverwrite(outputPath)
		if err != nil {
			return fmt.Errorf("failed to confirm overwrite: %w", err)
		}
		if !ok {
			fmt.Fprintln(stdout, "Aborted.")
			return nil
		}
	}

	printWelcome()

	result, err := wizardRunWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	if err := wizardWriteInputs(wizard.BuildInputs(result), outputPath); err != nil {
		return fmt.Errorf("failed to write inputs: %w", err)
	}

	printInitSuccess(outputPath, result)
	return nil
}

func printWelcome() {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "slsfw - serverless web frameworks")
	fmt.Fprintln(stdout, "=================================")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "This wizard creates deployment inputs. Defaults are left out of the file.")
	fmt.Fprintln(stdout)
}

func printInitSuccess(outputPath string, result *wizard.Result) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Inputs saved!")
	fmt.Fprintf(stdout, "  File:      %s\n", outputPath)
	fmt.Fprintf(stdout, "  Framework: %s\n", result.Framework)
	fmt.Fprintf(stdout, "  Regions:   %v\n", result.Regions)
	if result.CustomDomain != "" {
		fmt.Fprintf(stdout, "  Domain:    %s\n", result.CustomDomain)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Next steps:")
	fmt.Fprintf(stdout, "  slsfw deploy -f %s\n", outputPath)
}
