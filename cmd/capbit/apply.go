package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tzvibm/capbit/pkg/types"
	"gopkg.in/yaml.v3"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply a declarative policy bundle",
	Long: `Apply a YAML bundle of roles, grants, and inheritance edges in one shot.

Example:
  # Seed a project's policy from a bundle, acting as root
  capbit apply -f policy.yaml --actor 2`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringP("file", "f", "", "YAML policy bundle to apply (required)")
	applyCmd.Flags().Uint64("actor", uint64(types.Root), "Entity id the bundle's mutations are performed as")
	_ = applyCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(applyCmd)
}

// PolicyBundle is the declarative format capbit apply consumes: every role
// definition, grant, and inheritance edge it should seed on a single object.
// It carries apiVersion and kind fields, with the object and capbit's three
// tuple relations at the top level rather than under a spec body.
type PolicyBundle struct {
	APIVersion string         `yaml:"apiVersion"`
	Kind       string         `yaml:"kind"`
	Object     uint64         `yaml:"object"`
	Roles      []RoleEntry    `yaml:"roles,omitempty"`
	Grants     []GrantEntry   `yaml:"grants,omitempty"`
	Inherit    []InheritEntry `yaml:"inherit,omitempty"`
}

type RoleEntry struct {
	Role uint64 `yaml:"role"`
	Mask uint64 `yaml:"mask"`
}

type GrantEntry struct {
	Subject uint64 `yaml:"subject"`
	Role    uint64 `yaml:"role"`
}

type InheritEntry struct {
	Child  uint64 `yaml:"child"`
	Parent uint64 `yaml:"parent"`
}

func runApply(cmd *cobra.Command, args []string) error {
	filename, _ := cmd.Flags().GetString("file")
	actorRaw, _ := cmd.Flags().GetUint64("actor")
	actor := types.EntityID(actorRaw)

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read bundle: %w", err)
	}

	var bundle PolicyBundle
	if err := yaml.Unmarshal(data, &bundle); err != nil {
		return fmt.Errorf("failed to parse bundle: %w", err)
	}

	if bundle.Kind != "Policy" {
		return fmt.Errorf("unsupported bundle kind: %q (expected Policy)", bundle.Kind)
	}

	e, err := openEngine()
	if err != nil {
		return err
	}
	defer e.Close()

	object := types.EntityID(bundle.Object)

	for _, r := range bundle.Roles {
		if err := e.SetRole(actor, object, r.Role, r.Mask); err != nil {
			return fmt.Errorf("set-role %d on object %d: %w", r.Role, object, err)
		}
		fmt.Printf("✓ role %d set on object %d (mask=0x%x)\n", r.Role, object, r.Mask)
	}

	for _, g := range bundle.Grants {
		subject := types.EntityID(g.Subject)
		if err := e.Grant(actor, subject, object, g.Role); err != nil {
			return fmt.Errorf("grant subject %d on object %d: %w", subject, object, err)
		}
		fmt.Printf("✓ subject %d granted role %d on object %d\n", subject, g.Role, object)
	}

	for _, i := range bundle.Inherit {
		child := types.EntityID(i.Child)
		parent := types.EntityID(i.Parent)
		if err := e.SetInherit(actor, object, child, parent); err != nil {
			return fmt.Errorf("set-inherit child %d parent %d on object %d: %w", child, parent, object, err)
		}
		fmt.Printf("✓ %d inherits from %d on object %d\n", child, parent, object)
	}

	return nil
}
