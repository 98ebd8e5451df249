package formatter

import (
	"fmt"

	"nsefetch/internal/scraper"
)

// OutputLabel precedes text output on stdout
const OutputLabel = "Output:"

func Format(content scraper.Content, format string) (string, error) {
	switch format {
	case "text":
		text, err := content.ToText()
		if err != nil {
			return "", err
		}
		return OutputLabel + "\n" + text, nil
	case "json":
		b, err := content.ToJSON()
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}
