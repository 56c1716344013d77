package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error(ErrCodeImage, "failed to load image", nil)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E001", resp.Error.Code)
	assert.Equal(t, "failed to load image", resp.Error.Message)
}

func TestOutputFormatter_TextErrorGoesToErrWriter(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:    "text",
		Writer:    out,
		ErrWriter: errOut,
	}

	err := formatter.Error(ErrCodeScenario, "invalid scenario", nil)
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "Error [E002]: invalid scenario")
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	err := formatter.Error(ErrCodeImage, "failed to load image", "no such file")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [E001]")
	assert.Contains(t, buf.String(), "Details: no such file")
}

func TestOutputFormatter_Fail(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}
	cause := errors.New("boom")

	err := formatter.Fail(ExitCommandError, ErrCodeDatabase, "failed to open database", cause)

	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, buf.String(), "Error [E005]: failed to open database")
}

func TestOutputFormatter_InfoRouting(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	text := &OutputFormatter{Format: "text", Writer: out, ErrWriter: errOut}
	text.Info("Loaded %d instructions from %s", 3, "a.hex")
	assert.Equal(t, "Loaded 3 instructions from a.hex\n", out.String())
	assert.Empty(t, errOut.String())

	out.Reset()
	jsonFmt := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut}
	jsonFmt.Info("Loaded %d instructions from %s", 3, "a.hex")
	assert.Empty(t, out.String(), "stdout must stay a single JSON document")
	assert.Equal(t, "Loaded 3 instructions from a.hex\n", errOut.String())
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:  "text",
				Writer:  buf,
				Verbose: tt.verbose,
			}

			formatter.VerboseLog("Processing %s", "addi.yaml")

			if tt.wantLog {
				assert.Contains(t, buf.String(), "Processing addi.yaml")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "x")))
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitCommandError, "x"))))
}

func TestExitError_Message(t *testing.T) {
	assert.Equal(t, "simulation aborted", NewExitError(ExitFailure, "simulation aborted").Error())
	assert.Equal(t, "simulation aborted: boom", WrapExitError(ExitFailure, "simulation aborted", errors.New("boom")).Error())
}
