package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-village/internal/engine/skills"
	"github.com/KirkDiggler/rpg-village/internal/entities"
)

var skillsCatalogPath string

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Print the skill catalog",
	RunE:  printSkills,
}

func init() {
	skillsCmd.Flags().StringVar(&skillsCatalogPath, "catalog", "", "skill catalog YAML file (default catalog when empty)")
}

func printSkills(cmd *cobra.Command, _ []string) error {
	catalog := skills.Default()
	if skillsCatalogPath != "" {
		var err error
		catalog, err = skills.LoadFile(skillsCatalogPath)
		if err != nil {
			return fmt.Errorf("failed to load catalog: %w", err)
		}
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tEFFECT\tMANA\tCOOLDOWN\tRANGE")
	for _, skill := range catalog.List() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%gs\t%g\n",
			skill.ID, skill.Type(), describeEffect(skill.Effect), skill.ManaCost, skill.Cooldown, skill.Range)
	}
	return tw.Flush()
}

func describeEffect(effect entities.Effect) string {
	switch e := effect.(type) {
	case entities.AttackEffect:
		return fmt.Sprintf("%d damage", e.Damage)
	case entities.HealEffect:
		return fmt.Sprintf("%g heal", e.Amount)
	case entities.UtilityEffect:
		if e.RequiresTarget {
			return string(e.Kind) + " (target)"
		}
		return string(e.Kind)
	default:
		return "-"
	}
}
