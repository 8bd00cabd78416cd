package service

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/codesim/domain"
)

func writeHello(w io.Writer) error {
	_, err := io.WriteString(w, "hello")
	return err
}

func TestFileOutputWriter_ToWriter(t *testing.T) {
	var status, out bytes.Buffer
	w := NewFileOutputWriter(&status)

	require.NoError(t, w.Write(&out, "", domain.OutputFormatText, false, writeHello))
	assert.Equal(t, "hello", out.String())
	assert.Empty(t, status.String())

	assert.Error(t, w.Write(nil, "", domain.OutputFormatText, false, writeHello))

	err := w.Write(&out, "", domain.OutputFormatText, false, func(io.Writer) error { return errors.New("boom") })
	assert.Equal(t, domain.ErrCodeOutputError, domain.ErrorCode(err))
}

func TestFileOutputWriter_ToFile(t *testing.T) {
	var status bytes.Buffer
	w := NewFileOutputWriter(&status)

	path := filepath.Join(t.TempDir(), "reports", "out.json")
	require.NoError(t, w.Write(nil, path, domain.OutputFormatJSON, false, writeHello))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
	assert.Contains(t, status.String(), "JSON report generated")
}

func TestFileOutputWriter_HTML(t *testing.T) {
	var status bytes.Buffer
	w := NewFileOutputWriter(&status)

	var opened string
	w.open = func(url string) error {
		opened = url
		return nil
	}

	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, w.Write(nil, path, domain.OutputFormatHTML, true, writeHello))
	assert.Empty(t, opened)
	assert.Contains(t, status.String(), "HTML report generated")

	status.Reset()
	require.NoError(t, w.Write(nil, path, domain.OutputFormatHTML, false, writeHello))
	assert.Contains(t, opened, "file://")
	assert.Contains(t, status.String(), "opened")

	status.Reset()
	w.open = func(string) error { return errors.New("no browser") }
	require.NoError(t, w.Write(nil, path, domain.OutputFormatHTML, false, writeHello))
	assert.Contains(t, status.String(), "Could not open browser")
}
