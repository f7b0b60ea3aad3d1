package commands

import (
	"fmt"
	"os"
	"strings"

	"refassist-backend/lib/assignr"
	"refassist-backend/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var scoreSheetStart, scoreSheetEnd, scoreSheetGameType *string

func init() {
	scoreSheetStart = scoreSheetCmd.Flags().StringP("start-date", "s", "", "Start of the window (MM/DD/YYYY).")
	scoreSheetEnd = scoreSheetCmd.Flags().StringP("end-date", "e", "", "End of the window (MM/DD/YYYY).")
	scoreSheetGameType = scoreSheetCmd.Flags().StringP("game-type", "g", "Futsal", "Game type to build the score sheet for.")
	rootCmd.AddCommand(scoreSheetCmd)
}

func crewNames(officials []assignr.GameOfficial) string {
	names := make([]string, 0, len(officials))
	for _, official := range officials {
		name := strings.TrimSpace(fmt.Sprintf("%s %s", official.FirstName, official.LastName))
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

var scoreSheetCmd = &cobra.Command{
	Use:   "score-sheet -s <start-date> -e <end-date> [-g <game-type>]",
	Short: "Prints the score sheet of a game type's slate for the window.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		start, end, err := requiredWindow(*scoreSheetStart, *scoreSheetEnd)
		if err != nil {
			serviceutil.Fatal("invalid window", err)
		}
		cfg, err := loadConfig()
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}

		client := newAssignrClient(cfg)
		if err := client.LoadDirectory(ctx); err != nil {
			serviceutil.Fatal("failed to load user directory", err)
		}

		games, err := client.LeagueGames(ctx, *scoreSheetGameType, start, end)
		if err != nil {
			serviceutil.Fatal("failed to fetch games", err)
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.AppendHeader(table.Row{"Date", "Time", "Home", "Away", "Age Group", "Venue", "Officials"})
		for _, game := range games {
			tw.AppendRow(table.Row{
				game.Date, game.Time,
				game.HomeTeam, game.AwayTeam,
				game.AgeGroup, game.Venue,
				crewNames(game.Referees),
			})
		}
		tw.Render()
	},
}
