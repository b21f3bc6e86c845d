package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"license-audit/internal/ports"
	"license-audit/internal/types"
)

// PolicyFileAdapter loads risk policy definitions from YAML files.
type PolicyFileAdapter struct{}

func NewPolicyFileAdapter() PolicyFileAdapter {
	return PolicyFileAdapter{}
}

func (a PolicyFileAdapter) LoadPolicy(path string) (types.PolicyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.PolicyFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("policy file not found").
			WithCause(err)
	}
	var file types.PolicyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return types.PolicyFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse policy yaml").
			WithCause(err)
	}
	return file, nil
}

var _ ports.PolicySourcePort = PolicyFileAdapter{}
