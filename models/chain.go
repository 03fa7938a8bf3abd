package models

// ChainStep is one intermediate step of a QA chain invocation. The first
// step carries the generated query; the executed rows may ride on the same
// step or on a follow-up step with only Context set.
type ChainStep struct {
	Query   string
	Context []map[string]any
}

// ChainResult is what a QA chain returns for one question.
type ChainResult struct {
	Answer string
	Steps  []ChainStep
}
