package state

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"sigs.k8s.io/yaml"

	"github.com/imamik/slsfw/internal/config"
	"github.com/imamik/slsfw/internal/config/node"
)

// Record is the persisted result of a deployment.
type Record struct {
	DeploymentID     string     `json:"deploymentId,omitempty"`
	Framework        string     `json:"framework,omitempty"`
	FunctionName     string     `json:"functionName,omitempty"`
	FromClientRemark string     `json:"fromClientRemark,omitempty"`
	Regions          []string   `json:"regions,omitempty"`
	CNS              []string   `json:"cns,omitempty"`
	Outputs          *node.Node `json:"outputs,omitempty"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// NewRecord starts a record for a new deployment.
func NewRecord() *Record {
	return &Record{DeploymentID: uuid.NewString()}
}

// IsEmpty reports whether nothing was ever deployed under this record.
func (r *Record) IsEmpty() bool {
	return r == nil || r.DeploymentID == ""
}

// Prior returns the parts of the record the normalizer reuses.
func (r *Record) Prior() config.PriorState {
	if r == nil {
		return config.PriorState{}
	}
	return config.PriorState{FunctionName: r.FunctionName}
}

func encode(r *Record) ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*Record, error) {
	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	return &r, nil
}
