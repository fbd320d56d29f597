package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lintai-dev/lintai/internal/config"
	"github.com/lintai-dev/lintai/internal/constants"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate an assertions config file",
		Long: `Generate a documented assertions config file with sensible defaults.

By default, creates ` + constants.AssertionsFileName + ` in the current
directory. Use --interactive for a guided setup wizard.

Examples:
  # Create the default assertions file
  lintai init

  # Custom output path
  lintai init --config custom.json

  # Overwrite existing file
  lintai init --force

  # Generate a minimal starting point
  lintai init --minimal

  # Interactive setup wizard
  lintai init --interactive
  lintai init -i`,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", constants.AssertionsFileName,
		"Output path for the assertions file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config with essential rules only")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	// Get flag values from command
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	interactive, _ := cmd.Flags().GetBool("interactive")

	strictness := config.StrictnessStandard

	// Run interactive setup if requested
	if interactive {
		var err error
		var interactiveConfigPath string
		strictness, interactiveConfigPath, err = runInteractiveSetup(configPath)
		if err != nil {
			return err
		}
		configPath = interactiveConfigPath
	}

	// Check if file exists
	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	// Check if parent directory exists
	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	// Generate config content
	var content string
	if minimal {
		content = config.GetMinimalAssertionsTemplate()
	} else {
		content = config.GetFullAssertionsTemplate(strictness)
	}

	// Write to file
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Print success message with absolute path if possible, otherwise use relative path
	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	fmt.Printf("Created %s\n", displayPath)
	fmt.Println("\nRun 'lintai check --output \"...\"' to validate an output.")

	return nil
}

func runInteractiveSetup(defaultConfigPath string) (config.Strictness, string, error) {
	fmt.Println()
	fmt.Println("lintai Configuration Setup")
	fmt.Println("==========================")
	fmt.Println()

	// Strictness selection
	strictnessLevels := []struct {
		Label       string
		Description string
		Value       config.Strictness
	}{
		{"Standard (recommended)", "Balanced rules for most outputs", config.StrictnessStandard},
		{"Relaxed", "Longer outputs allowed, fewer required elements", config.StrictnessRelaxed},
		{"Strict", "Tight length bounds, CI/CD enforcement", config.StrictnessStrict},
	}

	strictnessTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }} - {{ .Description | faint }}",
		Inactive: "   {{ .Label | white }} - {{ .Description | faint }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	strictnessPrompt := promptui.Select{
		Label:     "How strict should validation be?",
		Items:     strictnessLevels,
		Templates: strictnessTemplates,
	}

	strictnessIdx, _, err := strictnessPrompt.Run()
	if err != nil {
		return "", "", fmt.Errorf("strictness selection cancelled: %w", err)
	}
	selectedStrictness := strictnessLevels[strictnessIdx].Value

	fmt.Println()

	// Output path prompt
	outputPrompt := promptui.Prompt{
		Label:   "Output file path",
		Default: defaultConfigPath,
	}

	outputPath, err := outputPrompt.Run()
	if err != nil {
		return "", "", fmt.Errorf("output path input cancelled: %w", err)
	}

	// Use default if empty
	if outputPath == "" {
		outputPath = defaultConfigPath
	}

	fmt.Println()
	fmt.Printf("Creating %s... ", outputPath)

	return selectedStrictness, outputPath, nil
}
