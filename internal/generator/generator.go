// Package generator maps validated tool requests to markdown documents.
//
// Generators are pure: they validate their input, compose the repeating
// sections as strings, and feed the fixed skeletons in the templates
// package. All rejection is delegated to the validation package; no
// generator performs I/O.
package generator

import (
	"fmt"
	"strings"

	"github.com/specsmith/specsmith/internal/templates"
	"github.com/specsmith/specsmith/internal/toolerr"
	"github.com/specsmith/specsmith/internal/validation"
)

// Generator renders the three document kinds plus the guidance text.
type Generator struct {
	validator *validation.Validator
	renderer  templates.Renderer
}

// New creates a Generator with its dependencies.
func New(v *validation.Validator, r templates.Renderer) *Generator {
	return &Generator{validator: v, renderer: r}
}

// Requirements produces the requirements document for a validated request.
func (g *Generator) Requirements(req RequirementsRequest) (string, error) {
	name, err := g.validator.Name("projectName", req.ProjectName)
	if err != nil {
		return "", err
	}
	description, err := g.validator.Description("projectDescription", req.ProjectDescription)
	if err != nil {
		return "", err
	}
	if len(req.Requirements) == 0 {
		return "", toolerr.New(toolerr.EmptyCriteria, "requirements must contain at least one entry")
	}

	var sections []string
	for i, r := range req.Requirements {
		story, err := g.validator.UserStory(fmt.Sprintf("requirements[%d].userStory", i), r.UserStory)
		if err != nil {
			return "", err
		}
		criteria, err := g.validator.Criteria(
			fmt.Sprintf("requirements[%d].acceptanceCriteria", i), r.AcceptanceCriteria)
		if err != nil {
			return "", err
		}

		var b strings.Builder
		fmt.Fprintf(&b, "### Requirement %d\n\n", i+1)
		fmt.Fprintf(&b, "**User Story:** %s\n\n", story)
		b.WriteString("#### Acceptance Criteria\n\n")
		for _, c := range criteria {
			fmt.Fprintf(&b, "- %s\n", c)
		}
		sections = append(sections, b.String())
	}

	return g.renderer.Render(templates.Requirements, templates.RequirementsData{
		ProjectName:  name,
		Introduction: description,
		Requirements: strings.Join(sections, "\n"),
	})
}

// Design produces the design document. Absent tech-stack layers,
// components, and data models are omitted rather than rendered empty.
func (g *Generator) Design(req DesignRequest) (string, error) {
	name, err := g.validator.Name("projectName", req.ProjectName)
	if err != nil {
		return "", err
	}
	description, err := g.validator.Description("projectDescription", req.ProjectDescription)
	if err != nil {
		return "", err
	}

	stack, err := g.buildTechStack(req.TechStack)
	if err != nil {
		return "", err
	}

	var components []string
	for i, c := range req.Components {
		cname, err := g.validator.Name(fmt.Sprintf("components[%d].name", i), c.Name)
		if err != nil {
			return "", err
		}
		desc, err := g.validator.Text(
			fmt.Sprintf("components[%d].description", i), c.Description, validation.MaxUserStoryLength)
		if err != nil {
			return "", err
		}
		components = append(components, fmt.Sprintf("- **%s:** %s", cname, desc))
	}

	var models []string
	for i, m := range req.DataModels {
		mname, err := g.validator.Name(fmt.Sprintf("dataModels[%d].name", i), m.Name)
		if err != nil {
			return "", err
		}
		desc, err := g.validator.Text(
			fmt.Sprintf("dataModels[%d].description", i), m.Description, validation.MaxUserStoryLength)
		if err != nil {
			return "", err
		}
		models = append(models, fmt.Sprintf("- **%s:** %s", mname, desc))
	}

	return g.renderer.Render(templates.Design, templates.DesignData{
		ProjectName: name,
		Overview:    description,
		TechStack:   stack,
		Components:  strings.Join(components, "\n"),
		DataModels:  strings.Join(models, "\n"),
	})
}

// buildTechStack renders one bullet per present layer.
func (g *Generator) buildTechStack(ts TechStack) (string, error) {
	layers := []struct {
		label string
		value string
	}{
		{"Frontend", ts.Frontend},
		{"Backend", ts.Backend},
		{"Database", ts.Database},
		{"Infrastructure", ts.Infrastructure},
	}

	var lines []string
	for _, l := range layers {
		field := "techStack." + strings.ToLower(l.label)
		value, err := g.validator.OptionalText(field, l.value, validation.MaxCriterionLength)
		if err != nil {
			return "", err
		}
		if value == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("- **%s:** %s", l.label, value))
	}
	return strings.Join(lines, "\n"), nil
}

// Tasks produces the implementation plan document.
func (g *Generator) Tasks(req TasksRequest) (string, error) {
	name, err := g.validator.Name("projectName", req.ProjectName)
	if err != nil {
		return "", err
	}
	duration, err := g.validator.Name("estimatedDuration", req.EstimatedDuration)
	if err != nil {
		return "", err
	}
	deliverables, err := g.validator.Criteria("keyDeliverables", req.KeyDeliverables)
	if err != nil {
		return "", err
	}
	if len(req.Tasks) == 0 {
		return "", toolerr.New(toolerr.EmptyCriteria, "tasks must contain at least one entry")
	}

	var deliverableLines []string
	for _, d := range deliverables {
		deliverableLines = append(deliverableLines, "- "+d)
	}

	var sections []string
	for i, task := range req.Tasks {
		section, err := g.buildTaskSection(i, task)
		if err != nil {
			return "", err
		}
		sections = append(sections, section)
	}

	return g.renderer.Render(templates.Tasks, templates.TasksData{
		ProjectName:       name,
		EstimatedDuration: duration,
		KeyDeliverables:   strings.Join(deliverableLines, "\n"),
		Tasks:             strings.Join(sections, "\n"),
	})
}

// buildTaskSection validates one task and renders its markdown block.
func (g *Generator) buildTaskSection(i int, task Task) (string, error) {
	prefix := fmt.Sprintf("tasks[%d]", i)

	tname, err := g.validator.Name(prefix+".name", task.Name)
	if err != nil {
		return "", err
	}
	desc, err := g.validator.Description(prefix+".description", task.Description)
	if err != nil {
		return "", err
	}
	criteria, err := g.validator.Criteria(prefix+".acceptanceCriteria", task.AcceptanceCriteria)
	if err != nil {
		return "", err
	}
	estimate, err := g.validator.Name(prefix+".estimate", task.Estimate)
	if err != nil {
		return "", err
	}

	var deps []string
	for j, d := range task.Dependencies {
		clean, err := g.validator.Text(
			fmt.Sprintf("%s.dependencies[%d]", prefix, j), d, validation.MaxNameLength)
		if err != nil {
			return "", err
		}
		deps = append(deps, clean)
	}

	ref, err := g.validator.OptionalText(prefix+".requirementRef", task.RequirementRef, validation.MaxNameLength)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "### %d. %s\n\n", i+1, tname)
	fmt.Fprintf(&b, "%s\n\n", desc)
	b.WriteString("**Acceptance Criteria:**\n")
	for _, c := range criteria {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	b.WriteString("\n")
	if len(deps) > 0 {
		fmt.Fprintf(&b, "**Dependencies:** %s\n", strings.Join(deps, ", "))
	}
	fmt.Fprintf(&b, "**Estimate:** %s\n", estimate)
	if ref != "" {
		fmt.Fprintf(&b, "**Requirements:** %s\n", ref)
	}

	return b.String(), nil
}

// Guide produces the static guidance text with the query echoed.
// It performs no file I/O and is not subject to the file writer.
func (g *Generator) Guide(query string) (string, error) {
	clean, err := g.validator.Description("query", query)
	if err != nil {
		return "", err
	}
	return g.renderer.Render(templates.Guide, templates.GuideData{Query: clean})
}
