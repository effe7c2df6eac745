package azureworkitems

import (
	"flow-components/internal/common/logger"
)

type Input struct {
	Organization    string `json:"organization"`
	Project         string `json:"project"`
	PATToken        string `json:"patToken"`
	WiqlQuery       string `json:"wiqlQuery,omitempty"`
	QueryType       string `json:"queryType,omitempty"`
	UseKeywordQuery bool   `json:"useKeywordQuery,omitempty"`
	KeywordQuery    string `json:"keywordQuery,omitempty"`
	MaxItems        int    `json:"maxItems,omitempty"`
}

type Output struct {
	Success   bool                     `json:"success"`
	Message   string                   `json:"message"`
	Count     int                      `json:"count"`
	WorkItems []map[string]interface{} `json:"workItems"`
	Query     string                   `json:"query"`
}

type ServiceDependencies struct {
	Logger logger.Logger
}
