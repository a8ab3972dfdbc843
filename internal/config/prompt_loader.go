package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// loadPromptsFromFiles loads custom extraction prompts from external
// files when file paths are specified. File content overrides any
// inline prompt value.
func (c *Config) loadPromptsFromFiles() error {
	if c.AI.Prompts.SystemPromptFile == "" && c.AI.Prompts.UserPromptFile == "" {
		return nil
	}

	log.Println("[CONFIG] Starting custom prompt loading from files")

	if c.AI.Prompts.SystemPromptFile != "" {
		content, err := loadPromptFromFile(c.AI.Prompts.SystemPromptFile, "system")
		if err != nil {
			return err
		}
		c.AI.Prompts.SystemPrompt = content
	}

	if c.AI.Prompts.UserPromptFile != "" {
		content, err := loadPromptFromFile(c.AI.Prompts.UserPromptFile, "user")
		if err != nil {
			return err
		}
		if err := validateUserPromptTemplate(content, c.AI.Prompts.UserPromptFile); err != nil {
			return err
		}
		c.AI.Prompts.UserPrompt = content
	}

	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func loadPromptFromFile(filePath, promptType string) (string, error) {
	// Resolve relative paths
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s prompt file '%s': %w", promptType, filePath, err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s prompt file not found: %s", promptType, absPath)
	}

	// Read file content
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s prompt file '%s': %w", promptType, absPath, err)
	}

	// Validate content is not empty
	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s prompt file '%s' is empty", promptType, absPath)
	}

	log.Printf("[CONFIG] Successfully loaded %s prompt from file: %s (%d characters)",
		promptType, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// validateUserPromptTemplate checks that a custom user prompt carries
// the two placeholders the extractor fills in: the required-skills
// list and the resume text.
func validateUserPromptTemplate(template, filePath string) error {
	if strings.Count(template, "%s") != 2 {
		return fmt.Errorf("user prompt file '%s' must contain exactly two %%s placeholders (required skills, resume text)", filePath)
	}
	return nil
}

// validatePromptFiles validates that prompt files exist before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	validateFile := func(filePath, promptType string) {
		if filePath == "" {
			return // No file specified, skip validation
		}

		absPath, err := filepath.Abs(filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s prompt: %s", promptType, filePath))
			return
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s prompt file not found: %s", promptType, absPath))
		}
	}

	validateFile(c.AI.Prompts.SystemPromptFile, "system")
	validateFile(c.AI.Prompts.UserPromptFile, "user")

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}
