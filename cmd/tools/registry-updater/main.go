// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"flow-components/internal/common/validation"
	"flow-components/pkg/registry"
)

const defaultManifestPath = "configs/component-manifest.json"

var manifestPath string

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	// Add command flags
	idAdd := addCmd.String("id", "", "Component ID (e.g., tracker.jira.issues)")
	displayName := addCmd.String("displayName", "", "Display Name (e.g., Jira Issues)")
	description := addCmd.String("description", "", "Description")
	category := addCmd.String("category", "", "Category (e.g., tracker)")
	version := addCmd.String("version", "1.0.0", "Version")
	implStatus := addCmd.String("status", "planned", "Implementation Status (planned, in-progress, completed, verified)")
	addCmd.StringVar(&manifestPath, "path", defaultManifestPath, "Path to manifest file")

	// Update command flags
	idUpdate := updateCmd.String("id", "", "Component ID to update")
	field := updateCmd.String("field", "", "Field to update (status, version, etc.)")
	value := updateCmd.String("value", "", "New value for the field")
	updateCmd.StringVar(&manifestPath, "path", defaultManifestPath, "Path to manifest file")

	// Validate command flags
	validateCmd.StringVar(&manifestPath, "path", defaultManifestPath, "Path to manifest file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *idAdd == "" || *displayName == "" || *description == "" || *category == "" {
			fmt.Println("Error: id, displayName, description, and category are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		entry := registry.ComponentEntry{
			ID:                   *idAdd,
			DisplayName:          *displayName,
			Description:          *description,
			Category:             *category,
			Version:              *version,
			Custom:               true,
			ImplementationStatus: *implStatus,
			InputSchema:          map[string]interface{}{},
			OutputSchema:         map[string]interface{}{},
			ErrorCodes:           []string{},
			Timeout:              "30s",
			Tags:                 []string{},
		}
		if err := addComponent(&entry); err != nil {
			fmt.Printf("Error adding component: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Added component: %s\n", *idAdd)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateComponent(*idUpdate, *field, *value); err != nil {
			fmt.Printf("Error updating component: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated component %s, field %s to %s\n", *idUpdate, *field, *value)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateManifest(); err != nil {
			fmt.Printf("Manifest validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Manifest validation passed.")

	case "help":
		fallthrough
	default:
		help()
	}
}

func addComponent(entry *registry.ComponentEntry) error {
	if err := validation.ValidateComponentNaming(entry.ID); err != nil {
		return err
	}

	manifest, err := registry.LoadManifest(manifestPath)
	if err != nil {
		// A missing manifest file starts a fresh one.
		if os.IsNotExist(err) {
			manifest = &registry.ComponentManifest{
				Version:     "1.0.0",
				LastUpdated: time.Now().Format(time.RFC3339),
				Components:  []registry.ComponentEntry{},
			}
		} else {
			return fmt.Errorf("failed to load manifest: %w", err)
		}
	}

	if _, exists := manifest.Find(entry.ID); exists {
		return fmt.Errorf("component with ID %s already exists", entry.ID)
	}

	manifest.Components = append(manifest.Components, *entry)
	manifest.LastUpdated = time.Now().Format(time.RFC3339)

	return registry.SaveManifest(manifest, manifestPath)
}

func updateComponent(id, field, value string) error {
	manifest, err := registry.LoadManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	entry, found := manifest.Find(id)
	if !found {
		return fmt.Errorf("component with ID %s not found", id)
	}

	switch field {
	case "status":
		entry.ImplementationStatus = value
	case "version":
		entry.Version = value
	case "displayName":
		entry.DisplayName = value
	case "description":
		entry.Description = value
	case "category":
		entry.Category = value
	case "documentation":
		entry.Documentation = value
	case "icon":
		entry.Icon = value
	case "timeout":
		entry.Timeout = value
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	manifest.LastUpdated = time.Now().Format(time.RFC3339)
	return registry.SaveManifest(manifest, manifestPath)
}

func validateManifest() error {
	manifest, err := registry.LoadManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	if err := manifest.Validate(); err != nil {
		return err
	}

	for _, entry := range manifest.Components {
		if err := validation.ValidateComponentNaming(entry.ID); err != nil {
			return fmt.Errorf("component %s: %w", entry.ID, err)
		}
	}

	fmt.Printf("Manifest validation passed. Found %d components.\n", len(manifest.Components))
	return nil
}

func help() {
	fmt.Print(`
Usage: registry-updater <command> [flags]

Commands:
  add     Add a new component to the manifest
  update  Update an existing component's field
  validate Validate the manifest file
  help    Show this help message

Examples:
  registry-updater add -id tracker.jira.issues -displayName "Jira Issues" -description "Searches Jira issues with JQL" -category tracker
  registry-updater update -id tracker.jira.issues -field status -value completed
  registry-updater validate -path configs/component-manifest.json

Use 'registry-updater <command> -h' for more information about a command.

`)
}
