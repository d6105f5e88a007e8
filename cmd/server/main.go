// Package main is the entry point for the village server and its tools
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-village/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "rpg-village",
	Short: "RPG village combat and placement server",
	Long: `rpg-village runs the real-time village simulation: skill combat with mana and
cooldowns, grid structure placement, and game-state persistence.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
