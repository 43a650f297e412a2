package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Inspect and move board cards",
}

var boardShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the board column by column",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		b, err := services.Repo.LoadBoard()
		if err != nil {
			return err
		}

		fmt.Println(b.Name)
		for _, col := range b.Columns {
			fmt.Printf("  %s (%d)\n", col.Name, len(col.Cards))
			for _, card := range col.Cards {
				fmt.Printf("    #%d\n", card.IssueNumber)
			}
		}
		return nil
	},
}

var boardMoveCmd = &cobra.Command{
	Use:   "move <issue-number> <column>",
	Short: "Move a card to a column",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		number, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid issue number %q", args[0])
		}

		b, err := services.Repo.LoadBoard()
		if err != nil {
			return err
		}

		moved := b.MoveCard(number, args[1])
		if _, ok := moved.ColumnOf(number); !ok {
			return fmt.Errorf("no column named %q on board %q", args[1], b.Name)
		}
		if err := services.Repo.SaveBoard(moved); err != nil {
			return err
		}

		fmt.Printf("Moved #%d to %s\n", number, args[1])
		return nil
	},
}

func init() {
	boardCmd.AddCommand(boardShowCmd)
	boardCmd.AddCommand(boardMoveCmd)
	RootCmd.AddCommand(boardCmd)
}
