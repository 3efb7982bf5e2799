package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"audx/internal/config"
	"audx/internal/script"
)

// runTracks prints the project's track listing.
func runTracks(ctx context.Context, cfg *config.Config, args []string) int {
	timeout, ok := parseCommonFlags(args)
	if !ok {
		return ExitUsageErr
	}

	conn := newConn(cfg, timeout)
	defer conn.Close()

	tracks, err := script.NewSession(conn).Tracks(ctx)
	if err != nil {
		return reportErr(err)
	}
	if len(tracks) == 0 {
		fmt.Println("no tracks in the current project")
		return ExitOK
	}

	rows := make([][]string, len(tracks))
	for i, t := range tracks {
		rows[i] = []string{
			fmt.Sprintf("%d", t.Index+1),
			t.Name,
			onOff(t.Mute),
			onOff(t.Solo),
		}
	}
	printListing([]string{"#", "Name", "Mute", "Solo"}, rows)
	return ExitOK
}

// runClips prints the project's clip listing.
func runClips(ctx context.Context, cfg *config.Config, args []string) int {
	timeout, ok := parseCommonFlags(args)
	if !ok {
		return ExitUsageErr
	}

	conn := newConn(cfg, timeout)
	defer conn.Close()

	clips, err := script.NewSession(conn).Clips(ctx)
	if err != nil {
		return reportErr(err)
	}
	if len(clips) == 0 {
		fmt.Println("no clips in the current project")
		return ExitOK
	}

	rows := make([][]string, len(clips))
	for i, c := range clips {
		rows[i] = []string{
			c.Name,
			fmt.Sprintf("%d", c.Track+1),
			fmt.Sprintf("%.3f", c.Start),
			fmt.Sprintf("%.3f", c.End),
		}
	}
	printListing([]string{"Name", "Track", "Start", "End"}, rows)
	return ExitOK
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return ""
}

// printListing renders a table on a terminal and tab-separated lines when
// output is piped.
func printListing(headers []string, rows [][]string) {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		for _, row := range rows {
			fmt.Println(strings.Join(row, "\t"))
		}
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)
	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}
	fmt.Println(tw.Render())
}
