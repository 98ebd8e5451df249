package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Write sends formatted content to path, or to w when path is empty.
// A trailing newline is added if content lacks one.
func Write(w io.Writer, path, content string) error {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	if path == "" {
		if _, err := io.WriteString(w, content); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}
	return nil
}
