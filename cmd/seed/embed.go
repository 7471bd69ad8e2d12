package main

import (
	"embed"
	"fmt"
	"os"
)

//go:embed seeds/*.json
var seedFiles embed.FS

// readSeedFile returns the external file when path is set and the embedded
// default otherwise.
func readSeedFile(path, embedded string) ([]byte, error) {
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		return content, nil
	}

	content, err := seedFiles.ReadFile(embedded)
	if err != nil {
		return nil, fmt.Errorf("read embedded seed file: %w", err)
	}
	return content, nil
}
