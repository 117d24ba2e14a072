package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filesort/filesort/internal/config"
)

func withRealHistoryDB(t *testing.T) {
	t.Helper()
	originalConfig := appConfig
	appConfig = &config.Config{
		SourceFolder: "/src",
		RulesFile:    "/config/rules.yml",
		LogsFolder:   "/logs",
		HistoryDB:    filepath.Join(t.TempDir(), "history.db"),
	}
	t.Cleanup(func() { appConfig = originalConfig })
}

func TestHistoryListEmpty(t *testing.T) {
	withRealHistoryDB(t)
	buf := new(bytes.Buffer)
	historyListCmd.SetOut(buf)
	require.NoError(t, historyListCmd.RunE(historyListCmd, nil))
	assert.Contains(t, buf.String(), "ID\tSOURCE")
}

func TestHistoryShowMissingRunErrors(t *testing.T) {
	withRealHistoryDB(t)
	err := historyShowCmd.RunE(historyShowCmd, []string{"42"})
	assert.Error(t, err)
}

func TestHistoryShowInvalidIDErrors(t *testing.T) {
	withRealHistoryDB(t)
	err := historyShowCmd.RunE(historyShowCmd, []string{"not-a-number"})
	assert.Error(t, err)
}
