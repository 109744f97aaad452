package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/uofr/moodle-format-topcoll/pkg/core/navigation"
	"github.com/uofr/moodle-format-topcoll/pkg/core/text"
)

// truncateCommand shortens a label the way navigation labels are shortened.
func (c *CLI) truncateCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "truncate [text...]",
		Short: "Shorten text to a character budget at a word boundary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := strings.Join(args, " ")
			out := text.Truncate(in, limit)
			fmt.Fprintln(cmd.OutOrStdout(), out)
			if text.Shortened(in, limit) {
				c.Logger.Debug("text shortened", "from", len([]rune(in)), "max", limit)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "max", navigation.LabelLength, "maximum number of characters kept")
	return cmd
}
