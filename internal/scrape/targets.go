package scrape

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadTargets reads one target address per line from path. Blank lines are
// ignored; order is preserved.
func LoadTargets(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open targets file: %w", err)
	}
	defer file.Close()

	var targets []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		targets = append(targets, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read targets file: %w", err)
	}

	return targets, nil
}
