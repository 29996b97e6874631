package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// LoadExchange loads a recorded exchange from a JSON or YAML file
func LoadExchange(path string) (*Exchange, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var exchange Exchange

	// Detect format by extension
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		if err := yaml.Unmarshal(data, &exchange); err != nil {
			return nil, fmt.Errorf("failed to parse YAML fixture: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &exchange); err != nil {
			return nil, fmt.Errorf("failed to parse JSON fixture: %w", err)
		}
	}

	return &exchange, nil
}
