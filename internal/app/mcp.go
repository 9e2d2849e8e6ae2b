package app

import (
	"os"

	"github.com/blackwell-systems/taskwatch/internal/mcp"
	"github.com/blackwell-systems/taskwatch/internal/report"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP stdio server over the active user's data",
	Long: `Start a Model Context Protocol stdio server so an assistant can read the
active user's productivity data. The server exposes five read-only tools:

  get_streak           Current productivity streak
  get_stats            Per-day statistics for the trailing window
  get_recommendations  Current recommendations
  list_tasks           Tasks planned for a day
  list_habits          Habits with current and best streaks

Example MCP client configuration:
  {"mcpServers":{"taskwatch":{"command":"taskwatch","args":["mcp"]}}}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	u, err := e.currentUser()
	if err != nil {
		return err
	}

	srv := mcp.NewServer(e.db, u.ID, report.WindowsFromConfig(e.cfg), now, appVersion)
	return srv.Run(cmd.Context(), os.Stdin, os.Stdout)
}
