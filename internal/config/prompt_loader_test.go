package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePromptFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPromptsFromFiles(t *testing.T) {
	t.Run("no files configured is a no-op", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.AI.Prompts.SystemPrompt = "inline system prompt"

		require.NoError(t, cfg.loadPromptsFromFiles())
		assert.Equal(t, "inline system prompt", cfg.AI.Prompts.SystemPrompt)
	})

	t.Run("system prompt file overrides inline value", func(t *testing.T) {
		path := writePromptFile(t, "system.txt", "  You are a strict skill auditor.  \n")

		cfg := validTestConfig()
		cfg.AI.Prompts.SystemPrompt = "inline system prompt"
		cfg.AI.Prompts.SystemPromptFile = path

		require.NoError(t, cfg.loadPromptsFromFiles())
		assert.Equal(t, "You are a strict skill auditor.", cfg.AI.Prompts.SystemPrompt)
	})

	t.Run("user prompt file with two placeholders", func(t *testing.T) {
		path := writePromptFile(t, "user.txt", "Required skills: %s\nResume:\n%s")

		cfg := validTestConfig()
		cfg.AI.Prompts.UserPromptFile = path

		require.NoError(t, cfg.loadPromptsFromFiles())
		assert.Equal(t, "Required skills: %s\nResume:\n%s", cfg.AI.Prompts.UserPrompt)
	})

	t.Run("user prompt file with wrong placeholder count", func(t *testing.T) {
		path := writePromptFile(t, "user.txt", "Resume: %s")

		cfg := validTestConfig()
		cfg.AI.Prompts.UserPromptFile = path

		err := cfg.loadPromptsFromFiles()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly two %s placeholders")
	})

	t.Run("empty prompt file rejected", func(t *testing.T) {
		path := writePromptFile(t, "system.txt", "   \n\t\n")

		cfg := validTestConfig()
		cfg.AI.Prompts.SystemPromptFile = path

		err := cfg.loadPromptsFromFiles()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is empty")
	})

	t.Run("missing prompt file rejected", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.AI.Prompts.SystemPromptFile = "/nonexistent/system.txt"

		err := cfg.loadPromptsFromFiles()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestValidatePromptFiles(t *testing.T) {
	t.Run("no files configured", func(t *testing.T) {
		cfg := validTestConfig()
		assert.NoError(t, cfg.validatePromptFiles())
	})

	t.Run("existing files pass", func(t *testing.T) {
		systemPath := writePromptFile(t, "system.txt", "system")
		userPath := writePromptFile(t, "user.txt", "%s %s")

		cfg := validTestConfig()
		cfg.AI.Prompts.SystemPromptFile = systemPath
		cfg.AI.Prompts.UserPromptFile = userPath

		assert.NoError(t, cfg.validatePromptFiles())
	})

	t.Run("reports all missing files", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.AI.Prompts.SystemPromptFile = "/nonexistent/system.txt"
		cfg.AI.Prompts.UserPromptFile = "/nonexistent/user.txt"

		err := cfg.validatePromptFiles()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "system prompt file not found")
		assert.Contains(t, err.Error(), "user prompt file not found")
	})
}
