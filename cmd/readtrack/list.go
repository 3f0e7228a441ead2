package main

import (
	"fmt"

	"github.com/fwojciec/readtrack"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	materials, err := deps.Materials.FindMaterials(deps.Ctx, readtrack.MaterialFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
		return err
	}

	if len(materials) == 0 {
		fmt.Fprintln(deps.Stdout, "No materials found. Use 'readtrack add' to create one.")
		return nil
	}

	for _, m := range materials {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", m.ID, m.Name, m.Kind, m.SourceURL)
	}

	return nil
}

// findMaterial looks up a material by name, reporting failures on stderr.
func findMaterial(deps *Dependencies, name string) (*readtrack.Material, error) {
	materials, err := deps.Materials.FindMaterials(deps.Ctx, readtrack.MaterialFilter{Name: &name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
		return nil, err
	}

	if len(materials) == 0 {
		fmt.Fprintf(deps.Stderr, "error: material %q not found. Use 'readtrack list' to see available materials.\n", name)
		return nil, readtrack.Errorf(readtrack.ENOTFOUND, "material %q not found", name)
	}

	return materials[0], nil
}
