package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateCmdPrintsExampleRules(t *testing.T) {
	buf := new(bytes.Buffer)
	templateCmd.SetOut(buf)
	require.NoError(t, templateCmd.RunE(templateCmd, nil))
	assert.Contains(t, buf.String(), "move-jpegs")
	assert.Contains(t, buf.String(), "archive-old-logs")
}
