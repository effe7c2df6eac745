package azureworkitemcreate

import (
	"flow-components/internal/common/logger"
)

// Work item types accepted by the create endpoint.
var validWorkItemTypes = map[string]string{
	"user story": "User Story",
	"bug":        "Bug",
	"epic":       "Epic",
	"task":       "Task",
	"feature":    "Feature",
	"issue":      "Issue",
}

type Input struct {
	Organization  string         `json:"organization"`
	Project       string         `json:"project"`
	PATToken      string         `json:"patToken"`
	WorkItemType  string         `json:"workItemType"`
	AreaPath      string         `json:"areaPath,omitempty"`
	IterationPath string         `json:"iterationPath,omitempty"`
	Items         []WorkItemSpec `json:"items"`
}

// WorkItemSpec is one work item to create.
type WorkItemSpec struct {
	Title              string      `json:"title"`
	Description        string      `json:"description"`
	AcceptanceCriteria string      `json:"acceptanceCriteria,omitempty"`
	Priority           interface{} `json:"priority,omitempty"`
	Tags               []string    `json:"tags,omitempty"`
}

type CreatedItem struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

type Output struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	CreatedCount int           `json:"createdCount"`
	FailedCount  int           `json:"failedCount"`
	Items        []CreatedItem `json:"items"`
}

type ServiceDependencies struct {
	Logger logger.Logger
}
