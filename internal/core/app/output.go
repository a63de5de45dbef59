package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"exporter/internal/core/config"
	"exporter/internal/core/errors"
	"exporter/internal/shared/observability"
)

// Apply appends the result's statement to its file. It reports false without
// writing when there is nothing to export or the file already ends with the
// same statement.
func (a *App) Apply(res Result) (bool, error) {
	if res.Err != nil || len(res.Names) == 0 {
		return false, nil
	}

	content, err := os.ReadFile(res.Path)
	if err != nil {
		return false, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "read failed"), errors.CtxPath, res.Path)
	}
	trimmed := bytes.TrimRight(content, " \t\r\n")
	stmt := []byte(res.Statement)
	if bytes.HasSuffix(trimmed, stmt) || bytes.HasSuffix(trimmed, append(stmt, ';')) {
		return false, nil
	}

	f, err := os.OpenFile(res.Path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return false, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "open failed"), errors.CtxPath, res.Path)
	}
	defer f.Close()

	var b bytes.Buffer
	if len(content) > 0 && content[len(content)-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteString(res.Statement)
	b.WriteString(";\n")
	if _, err := f.Write(b.Bytes()); err != nil {
		return false, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "write failed"), errors.CtxPath, res.Path)
	}
	observability.FilesWrittenTotal.Inc()
	return true, nil
}

// Emit delivers results according to the configured output mode.
func (a *App) Emit(results []Result) error {
	switch a.Config.Output.Mode {
	case config.ModeAppend:
		for _, res := range results {
			written, err := a.Apply(res)
			if err != nil {
				return err
			}
			if written {
				fmt.Fprintf(a.Out, "updated %s: %s\n", res.Path, res.Statement)
			}
		}
		return nil
	case config.ModeJSON:
		return RenderJSON(a.Out, results)
	default:
		return RenderText(a.Out, results)
	}
}

// RenderText prints each successful result as a path comment followed by the
// statement. A single result without a path prints the bare statement.
func RenderText(w io.Writer, results []Result) error {
	if len(results) == 1 && results[0].Path == "" && results[0].Err == nil {
		_, err := fmt.Fprintln(w, results[0].Statement)
		return err
	}
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "// %s\n%s\n", res.Path, res.Statement); err != nil {
			return err
		}
	}
	return nil
}

func RenderJSON(w io.Writer, results []Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
