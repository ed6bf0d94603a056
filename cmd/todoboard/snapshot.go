package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanschultz/todoboard/internal/app"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// snapshot encodings accepted by export and import.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// newExportCommand writes a snapshot of every board to stdout or a file.
func newExportCommand(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	var (
		outPath string
		format  string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export boards and todos as a snapshot",
		Long: `Export every board and its ordered todos.

Examples:
  todoboard export > boards.json
  todoboard export --out boards.yaml
  todoboard export --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolved, err := resolveFormat(format, outPath)
			if err != nil {
				return err
			}
			env, err := openEnvironment(opts, stderr, "export")
			if err != nil {
				return err
			}
			defer env.Close(stderr)

			env.logger.Info("command flow start", "command", "export", "format", resolved)
			snap, err := env.svc.ExportSnapshot(cmd.Context())
			if err != nil {
				env.logger.Error("command flow failed", "command", "export", "err", err)
				return fmt.Errorf("export snapshot: %w", err)
			}
			encoded, err := encodeSnapshot(snap, resolved)
			if err != nil {
				return err
			}
			if err := writeOutput(outPath, encoded, stdout); err != nil {
				env.logger.Error("command flow failed", "command", "export", "err", err)
				return err
			}
			env.logger.Info("command flow complete", "command", "export", "boards", len(snap.Boards), "todos", len(snap.Todos))
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "-", "output file path ('-' for stdout)")
	cmd.Flags().StringVar(&format, "format", "", "snapshot format: json or yaml (default from --out extension, else json)")
	return cmd
}

// newImportCommand loads a snapshot file into the database.
func newImportCommand(opts *rootOptions, stderr io.Writer) *cobra.Command {
	var (
		inPath string
		format string
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import boards and todos from a snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(inPath) == "" {
				return fmt.Errorf("--in is required")
			}
			resolved, err := resolveFormat(format, inPath)
			if err != nil {
				return err
			}
			content, err := os.ReadFile(inPath)
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			snap, err := decodeSnapshot(content, resolved)
			if err != nil {
				return err
			}

			env, err := openEnvironment(opts, stderr, "import")
			if err != nil {
				return err
			}
			defer env.Close(stderr)

			env.logger.Info("command flow start", "command", "import", "in", inPath, "format", resolved)
			if err := env.svc.ImportSnapshot(cmd.Context(), snap); err != nil {
				env.logger.Error("command flow failed", "command", "import", "err", err)
				return fmt.Errorf("import snapshot: %w", err)
			}
			env.logger.Info("command flow complete", "command", "import", "boards", len(snap.Boards), "todos", len(snap.Todos))
			return nil
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "input snapshot file")
	cmd.Flags().StringVar(&format, "format", "", "snapshot format: json or yaml (default from --in extension, else json)")
	return cmd
}

// resolveFormat picks the snapshot encoding from the flag or the file extension.
func resolveFormat(flagValue, path string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(flagValue)) {
	case formatJSON:
		return formatJSON, nil
	case formatYAML, "yml":
		return formatYAML, nil
	case "":
	default:
		return "", fmt.Errorf("unsupported format %q (want json or yaml)", flagValue)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return formatJSON, nil
	}
}

// encodeSnapshot renders a snapshot with a trailing newline.
func encodeSnapshot(snap app.Snapshot, format string) ([]byte, error) {
	if format == formatYAML {
		encoded, err := yaml.Marshal(snap)
		if err != nil {
			return nil, fmt.Errorf("encode snapshot yaml: %w", err)
		}
		return encoded, nil
	}
	encoded, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot json: %w", err)
	}
	return append(encoded, '\n'), nil
}

// decodeSnapshot parses snapshot content.
func decodeSnapshot(content []byte, format string) (app.Snapshot, error) {
	var snap app.Snapshot
	if format == formatYAML {
		if err := yaml.Unmarshal(content, &snap); err != nil {
			return app.Snapshot{}, fmt.Errorf("decode snapshot yaml: %w", err)
		}
		return snap, nil
	}
	if err := json.Unmarshal(content, &snap); err != nil {
		return app.Snapshot{}, fmt.Errorf("decode snapshot json: %w", err)
	}
	return snap, nil
}

// writeOutput writes encoded bytes to stdout for "-" or to a file.
func writeOutput(outPath string, encoded []byte, stdout io.Writer) error {
	if outPath == "" || outPath == "-" {
		if _, err := stdout.Write(encoded); err != nil {
			return fmt.Errorf("write snapshot to stdout: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create export output dir: %w", err)
	}
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}
