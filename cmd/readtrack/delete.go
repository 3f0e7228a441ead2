package main

import (
	"fmt"

	"github.com/fwojciec/readtrack"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return readtrack.Errorf(readtrack.EINVALID, "use --force to confirm deletion")
	}

	material, err := findMaterial(deps, c.Name)
	if err != nil {
		return err
	}

	if err := deps.Materials.DeleteMaterial(deps.Ctx, material.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", readtrack.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted material %q\n", material.Name)
	return nil
}
