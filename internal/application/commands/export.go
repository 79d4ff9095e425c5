package commands

import (
	"context"
	"fmt"
	"strings"

	"storyshuffle/internal/application"
	"storyshuffle/internal/ports"
)

// ExportResult contains the result of exporting a manuscript
type ExportResult struct {
	Copied  bool
	Written string
	Message string
}

// ExportCommand sends an assembled manuscript to the clipboard, a file, or
// both
type ExportCommand struct {
	clipboard ports.Clipboard
	sink      ports.ManuscriptSource
	Text      string
	Copy      bool
	OutPath   string
}

// NewExportCommand creates a new ExportCommand. Either port may be nil when
// the matching destination is not requested.
func NewExportCommand(clipboard ports.Clipboard, sink ports.ManuscriptSource, text string, copyText bool, outPath string) *ExportCommand {
	return &ExportCommand{
		clipboard: clipboard,
		sink:      sink,
		Text:      text,
		Copy:      copyText,
		OutPath:   outPath,
	}
}

// Validate checks if the export operation is valid
func (c *ExportCommand) Validate() error {
	if !c.Copy && c.OutPath == "" {
		return &application.ValidationError{
			Field:   "outputPath",
			Message: "nothing to do: choose the clipboard or an output file",
		}
	}
	if c.Copy && c.clipboard == nil {
		return &application.ValidationError{Field: "clipboard", Message: "no clipboard available", Err: application.ErrInvalidOperation}
	}
	if c.OutPath != "" && c.sink == nil {
		return &application.ValidationError{Field: "outputPath", Message: "no file writer available", Err: application.ErrInvalidOperation}
	}
	return nil
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	result := &ExportResult{}
	var done []string
	if c.OutPath != "" {
		if err := c.sink.Write(c.OutPath, c.Text); err != nil {
			return nil, fmt.Errorf("failed to write manuscript: %w", err)
		}
		result.Written = c.OutPath
		done = append(done, "written to "+c.OutPath)
	}
	if c.Copy {
		if err := c.clipboard.WriteAll(c.Text); err != nil {
			return result, fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		result.Copied = true
		done = append(done, "copied to clipboard")
	}

	result.Message = "Manuscript " + strings.Join(done, " and ")
	return result, nil
}
