package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/field"
)

func newCalendarCommand(_ *app) *cobra.Command {
	var years bool
	cmd := &cobra.Command{
		Use:   "calendar [YEAR MONTH]",
		Short: "Print a month grid as the date picker lays it out",
		Args:  cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			year, month := now.Year(), now.Month()
			switch len(args) {
			case 2:
				y, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q", args[0])
				}
				m, err := strconv.Atoi(args[1])
				if err != nil || m < 1 || m > 12 {
					return fmt.Errorf("invalid month %q", args[1])
				}
				year, month = y, time.Month(m)
			case 1:
				return fmt.Errorf("expected YEAR and MONTH")
			}

			out := cmd.OutOrStdout()
			printCalendar(out, year, month)
			if years {
				fmt.Fprintln(out)
				for _, y := range field.Years(year) {
					fmt.Fprintf(out, "%d\n", y)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&years, "years", false, "also list the selectable years")
	return cmd
}

func printCalendar(out io.Writer, year int, month time.Month) {
	fmt.Fprintf(out, "%s %d\n", month, year)
	fmt.Fprintln(out, strings.Join(field.Weekdays[:], " "))

	cells := field.Calendar(year, month, time.Local)
	var row []string
	for i, day := range cells {
		if day == 0 {
			row = append(row, "  ")
		} else {
			row = append(row, fmt.Sprintf("%2d", day))
		}
		if (i+1)%7 == 0 || i == len(cells)-1 {
			fmt.Fprintln(out, strings.TrimRight(strings.Join(row, " "), " "))
			row = row[:0]
		}
	}
}
