package seed

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"flowbot/internal/workflow"
)

// Encode writes state to w as a YAML board that [Reader.Parse] accepts.
func Encode(w io.Writer, state workflow.State) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&state); err != nil {
		return fmt.Errorf("failed to encode board: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode board: %w", err)
	}
	return nil
}
