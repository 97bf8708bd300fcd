package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/uniguide/internal/advisor"
	"github.com/abhisek/uniguide/internal/mlmodel"
	"github.com/abhisek/uniguide/internal/record"
	"github.com/abhisek/uniguide/internal/report"
	"github.com/abhisek/uniguide/internal/ui/theme"
)

var assessCmd = &cobra.Command{
	Use:   "assess [record-file]",
	Short: "Assess a student record (JSON or YAML; stdin when no file or \"-\")",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		noRecord, _ := cmd.Flags().GetBool("no-record")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cmd, cfg)

		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		raw, err := readRecord(cmd.InOrStdin(), path)
		if err != nil {
			return err
		}

		opts := []advisor.Option{advisor.WithLogger(logger)}
		if cfg.RecordEvents && !noRecord {
			s, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer s.Close()
			opts = append(opts, advisor.WithRecorder(advisor.EventRecorder(s.EventRepo())))
		}
		svc := advisor.New(mlmodel.NewAdapter(modelSource(cfg), logger), opts...)

		resp := svc.Analyze(context.Background(), raw)

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(resp); err != nil {
				return err
			}
		} else if err := report.Render(out, resp, stylesFor(out)); err != nil {
			return err
		}

		if !resp.OK() {
			return fmt.Errorf("assessment finished with status %d", resp.Status)
		}
		return nil
	},
}

func init() {
	assessCmd.Flags().Bool("json", false, "Print the full response as JSON")
	assessCmd.Flags().Bool("no-record", false, "Do not append this analysis to the history")
}

// readRecord decodes a record from path, or from stdin when path is "-".
// The format follows the file extension; stdin is tried as JSON first, then
// YAML.
func readRecord(stdin io.Reader, path string) (record.RawRecord, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return record.RawRecord{}, fmt.Errorf("read record: %w", err)
	}
	return decodeRecord(data, strings.ToLower(filepath.Ext(path)))
}

func decodeRecord(data []byte, ext string) (record.RawRecord, error) {
	var raw record.RawRecord
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return raw, fmt.Errorf("parse YAML record: %w", err)
		}
		return raw, nil
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return raw, fmt.Errorf("parse JSON record: %w", err)
		}
		return raw, nil
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return raw, fmt.Errorf("parse JSON record: %w", err)
		}
		return raw, nil
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return raw, fmt.Errorf("parse YAML record: %w", err)
	}
	return raw, nil
}

// stylesFor colors output only when w is a terminal.
func stylesFor(w io.Writer) theme.Styles {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return theme.Default()
	}
	return theme.Plain()
}
