package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

// ArchivePage converts the rendered page to markdown and writes it into dir,
// named after the target address. Returns the written path.
func ArchivePage(dir, target, htmlContent string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &PersistenceError{Path: dir, Err: err}
	}

	cleaned, err := CleanHTML(htmlContent)
	if err != nil {
		return "", fmt.Errorf("failed to clean page: %w", err)
	}

	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())

	mdStr, err := converter.ConvertString(cleaned)
	if err != nil {
		return "", fmt.Errorf("failed to convert page: %w", err)
	}

	path := filepath.Join(dir, archiveName(target))
	if err := os.WriteFile(path, []byte(mdStr), 0644); err != nil {
		return "", &PersistenceError{Path: path, Err: err}
	}
	return path, nil
}

// archiveName derives a filesystem-safe markdown filename from a target URL.
func archiveName(target string) string {
	name := target
	if u, err := url.Parse(target); err == nil {
		name = u.Host + u.Path
	}
	name = strings.Trim(name, "/")
	replacer := strings.NewReplacer("/", "_", ":", "_", "?", "_", "&", "_", "=", "_", " ", "_")
	name = replacer.Replace(name)
	if len(name) > 80 {
		name = name[:80]
	}
	if name == "" {
		name = "page"
	}
	return name + ".md"
}
