// Package commands contains CLI command implementations for the application.
package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/golang-migrate/migrate/v4"

	"github.com/allisson/accountvault/internal/app"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// closeMigrate closes the migration instance and logs any errors.
func closeMigrate(migrate *migrate.Migrate, logger *slog.Logger) {
	sourceError, databaseError := migrate.Close()
	if sourceError != nil || databaseError != nil {
		logger.Error(
			"failed to close the migrate",
			slog.Any("source_error", sourceError),
			slog.Any("database_error", databaseError),
		)
	}
}

// promptLine writes prompt and reads one trimmed line from the tuple's reader.
func promptLine(tuple IOTuple, prompt string) (string, error) {
	if tuple.Reader == nil {
		return "", errors.New("no input available")
	}
	_, _ = fmt.Fprint(tuple.Writer, prompt)

	line, err := bufio.NewReader(tuple.Reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// writeOutput prints fields as indented JSON when format is "json", otherwise
// as "Label: value" lines under title.
func writeOutput(writer io.Writer, format, title string, fields [][2]string) error {
	if format == "json" {
		result := make(map[string]string, len(fields))
		for _, field := range fields {
			result[field[0]] = field[1]
		}

		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, _ = fmt.Fprintln(writer, string(jsonBytes))
		return nil
	}

	if title != "" {
		_, _ = fmt.Fprintln(writer, title)
	}
	for _, field := range fields {
		_, _ = fmt.Fprintf(writer, "%s: %s\n", field[0], field[1])
	}
	return nil
}
