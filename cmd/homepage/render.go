package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"homepage/internal/page"
)

var renderCmd = &cobra.Command{
	Use:   "render <path>",
	Short: "Render one page to stdout",
	Long:  `Renders the page served at path (/, /apps/, /status/, /about/ or /contact/) and writes the HTML to stdout.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(true)
	if err != nil {
		return err
	}
	h, _, err := newHandlers(cfg)
	if err != nil {
		return err
	}

	body, err := h.RenderPath(cmd.Context(), page.Context{Path: args[0], Origin: originOf(cfg)})
	if err != nil {
		return fmt.Errorf("rendering %s: %w", args[0], err)
	}
	_, err = cmd.OutOrStdout().Write(body)
	return err
}
