// Package wizard provides the interactive input wizard behind "slsfw init".
//
// RunWizard asks a short series of questions with charmbracelet/huh and
// returns a Result. BuildInputs turns the answers into an inputs tree and
// WriteInputs writes it as a commented YAML file that LoadFile can read.
package wizard
