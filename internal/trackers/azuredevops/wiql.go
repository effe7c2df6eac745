package azuredevops

import (
	"fmt"
	"strings"
)

// Default field set for generated queries.
var defaultQueryFields = []string{
	"System.Id",
	"System.Title",
	"System.State",
	"System.WorkItemType",
	"System.AssignedTo",
	"System.CreatedDate",
	"System.ChangedDate",
	"System.Tags",
}

// OrderClause is a single ORDER BY term.
type OrderClause struct {
	Field     string
	Direction string // "ASC" or "DESC"
}

// QueryParams drives WIQL construction from structured inputs.
type QueryParams struct {
	Fields        []string
	Project       string
	WorkItemTypes []string
	States        []string
	AssignedTo    string
	AreaPath      string
	IterationPath string
	Tags          []string
	SearchTerms   []string
	OrderBy       []OrderClause
	MaxItems      int
}

// DefaultQuery is the fallback Task query used when no parameters or
// keywords produce anything better.
func DefaultQuery() string {
	return "SELECT [System.Id], [System.Title], [System.State] FROM WorkItems " +
		"WHERE [System.WorkItemType] = 'Task' AND [System.State] <> 'Closed' " +
		"ORDER BY [System.ChangedDate] DESC"
}

// BuildQuery assembles a WIQL query string from structured parameters.
func BuildQuery(p QueryParams) string {
	fields := p.Fields
	if len(fields) == 0 {
		fields = defaultQueryFields
	}

	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = bracket(f)
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	if p.MaxItems > 0 {
		fmt.Fprintf(&sb, "TOP %d ", p.MaxItems)
	}
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(" FROM WorkItems")

	conditions := buildConditions(p)
	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}

	orderBy := p.OrderBy
	if len(orderBy) == 0 {
		orderBy = []OrderClause{{Field: "System.ChangedDate", Direction: "DESC"}}
	}
	orders := make([]string, len(orderBy))
	for i, o := range orderBy {
		direction := strings.ToUpper(o.Direction)
		if direction != "ASC" && direction != "DESC" {
			direction = "DESC"
		}
		orders[i] = fmt.Sprintf("%s %s", bracket(o.Field), direction)
	}
	sb.WriteString(" ORDER BY ")
	sb.WriteString(strings.Join(orders, ", "))

	return sb.String()
}

func buildConditions(p QueryParams) []string {
	var conditions []string

	if p.Project != "" {
		conditions = append(conditions, fmt.Sprintf("[System.TeamProject] = '%s'", escape(p.Project)))
	}

	if clause := equalsOrIn("System.WorkItemType", p.WorkItemTypes); clause != "" {
		conditions = append(conditions, clause)
	}
	if clause := equalsOrIn("System.State", p.States); clause != "" {
		conditions = append(conditions, clause)
	}

	if p.AssignedTo != "" {
		conditions = append(conditions, fmt.Sprintf("[System.AssignedTo] = '%s'", escape(p.AssignedTo)))
	}

	if p.AreaPath != "" {
		conditions = append(conditions, pathClause("System.AreaPath", p.AreaPath))
	}

	if p.IterationPath != "" {
		if p.IterationPath == "@CurrentIteration" {
			conditions = append(conditions, "[System.IterationPath] = @CurrentIteration")
		} else {
			conditions = append(conditions, pathClause("System.IterationPath", p.IterationPath))
		}
	}

	for _, tag := range p.Tags {
		if tag == "" {
			continue
		}
		conditions = append(conditions, fmt.Sprintf("[System.Tags] CONTAINS '%s'", escape(tag)))
	}

	if len(p.SearchTerms) > 0 {
		var terms []string
		for _, term := range p.SearchTerms {
			if term == "" {
				continue
			}
			terms = append(terms, fmt.Sprintf(
				"([System.Title] CONTAINS '%s' OR [System.Description] CONTAINS '%s')",
				escape(term), escape(term)))
		}
		if len(terms) > 0 {
			conditions = append(conditions, "("+strings.Join(terms, " OR ")+")")
		}
	}

	return conditions
}

// equalsOrIn renders a single value as equality and multiple values as an
// IN list.
func equalsOrIn(field string, values []string) string {
	var nonEmpty []string
	for _, v := range values {
		if v != "" {
			nonEmpty = append(nonEmpty, v)
		}
	}

	switch len(nonEmpty) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("%s = '%s'", bracket(field), escape(nonEmpty[0]))
	default:
		quoted := make([]string, len(nonEmpty))
		for i, v := range nonEmpty {
			quoted[i] = fmt.Sprintf("'%s'", escape(v))
		}
		return fmt.Sprintf("%s IN (%s)", bracket(field), strings.Join(quoted, ", "))
	}
}

// pathClause renders a tree path filter; a trailing wildcard switches from
// equality to an UNDER match on the parent path.
func pathClause(field, path string) string {
	if strings.HasSuffix(path, "*") {
		trimmed := strings.TrimRight(path, "*")
		trimmed = strings.TrimRight(trimmed, "\\/")
		return fmt.Sprintf("%s UNDER '%s'", bracket(field), escape(trimmed))
	}
	return fmt.Sprintf("%s = '%s'", bracket(field), escape(path))
}

func bracket(field string) string {
	field = strings.Trim(field, "[]")
	return "[" + field + "]"
}

func escape(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}

// Keyword vocabularies for the heuristic natural-language mapping.
var (
	keywordTypes = []struct {
		keyword  string
		itemType string
	}{
		{"bug", "Bug"},
		{"defect", "Bug"},
		{"task", "Task"},
		{"story", "User Story"},
		{"feature", "Feature"},
		{"epic", "Epic"},
	}

	keywordStates = []struct {
		keyword string
		states  []string
	}{
		{"open", []string{"New", "Active"}},
		{"active", []string{"Active"}},
		{"new", []string{"New"}},
		{"closed", []string{"Closed"}},
		{"done", []string{"Done", "Closed"}},
		{"resolved", []string{"Resolved"}},
	}
)

// QueryFromKeywords maps free text to a WIQL query by keyword matching.
// Unrecognized text falls back to the default Task query.
func QueryFromKeywords(text string, maxItems int) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return DefaultQuery()
	}

	var types []string
	seenTypes := make(map[string]bool)
	for _, kt := range keywordTypes {
		if strings.Contains(lowered, kt.keyword) && !seenTypes[kt.itemType] {
			types = append(types, kt.itemType)
			seenTypes[kt.itemType] = true
		}
	}

	var states []string
	seenStates := make(map[string]bool)
	for _, ks := range keywordStates {
		if strings.Contains(lowered, ks.keyword) {
			for _, state := range ks.states {
				if !seenStates[state] {
					states = append(states, state)
					seenStates[state] = true
				}
			}
		}
	}

	if len(types) == 0 && len(states) == 0 {
		return DefaultQuery()
	}
	if len(types) == 0 {
		types = []string{"Task", "Bug", "User Story"}
	}

	return BuildQuery(QueryParams{
		WorkItemTypes: types,
		States:        states,
		MaxItems:      maxItems,
	})
}
