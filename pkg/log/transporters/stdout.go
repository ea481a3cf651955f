// Package transporters holds concrete log output destinations.
package transporters

import (
	"encoding/json"
	"io"
	"os"

	"github.com/hckaye/noice-board/pkg/log"
)

// Stdout writes line-delimited JSON entries to stdout or any io.Writer.
type Stdout struct {
	writer io.Writer
}

// NewStdout creates a transporter writing to os.Stdout.
func NewStdout() *Stdout {
	return &Stdout{writer: os.Stdout}
}

// NewStdoutWithWriter creates a transporter with a custom writer, which
// tests use to capture output.
func NewStdoutWithWriter(w io.Writer) *Stdout {
	return &Stdout{writer: w}
}

// Name returns the transporter identifier.
func (s *Stdout) Name() string { return "stdout" }

// Write marshals the entry to JSON followed by a newline.
func (s *Stdout) Write(entry log.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = s.writer.Write(data)
	return err
}

// Close is a no-op for stdout.
func (s *Stdout) Close() error { return nil }
