package model

type Project struct {
	Name string      `json:"name"`
	Spec ProjectSpec `json:"spec"`
}

type ProjectSpec struct {
	Source       string         `json:"source,omitempty"`
	DefaultImage string         `json:"defaultImage,omitempty"`
	Workflows    []WorkflowSpec `json:"workflows,omitempty"`
}

// GetWorkflow returns a copy of the stored workflow definition with the given
// name, or nil when the project does not carry it.
func (p *Project) GetWorkflow(name string) *WorkflowSpec {
	for i := range p.Spec.Workflows {
		if p.Spec.Workflows[i].Name == name {
			return p.Spec.Workflows[i].Copy()
		}
	}
	return nil
}
