package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load decodes the JSON configuration file at filePath into config, which
// must be a pointer to the module's configuration struct.
func Load(filePath string, config any) error {
	configFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("opening configuration file %s: %w", filePath, err)
	}
	defer func() {
		_ = configFile.Close()
	}()

	jsonParser := json.NewDecoder(configFile)
	if err := jsonParser.Decode(config); err != nil {
		return fmt.Errorf("decoding configuration file %s: %w", filePath, err)
	}

	return nil
}
