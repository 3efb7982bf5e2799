package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"audx/internal/config"
	"audx/internal/export"
	"audx/internal/fsutil"
	"audx/internal/script"
)

type exportFlags struct {
	dir       string
	format    string
	base      string
	prefix    string
	channels  int
	rmScratch bool
	timeout   time.Duration
}

func parseExportFlags(cfg *config.Config, args []string, clips bool) (*exportFlags, error) {
	f := &exportFlags{
		dir:      cfg.Export.Directory,
		format:   cfg.Export.Format,
		base:     cfg.Export.Base,
		prefix:   cfg.Export.Prefix,
		channels: cfg.Export.Channels,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case isFlag(arg, "--dir"):
			v, err := flagValue(args, &i, arg)
			if err != nil {
				return nil, err
			}
			f.dir = v
		case isFlag(arg, "--format"):
			v, err := flagValue(args, &i, arg)
			if err != nil {
				return nil, err
			}
			f.format = strings.TrimPrefix(v, ".")
		case isFlag(arg, "--base") && !clips:
			v, err := flagValue(args, &i, arg)
			if err != nil {
				return nil, err
			}
			f.base = v
		case isFlag(arg, "--prefix") && clips:
			v, err := flagValue(args, &i, arg)
			if err != nil {
				return nil, err
			}
			f.prefix = v
		case isFlag(arg, "--channels"):
			n, err := intFlag(args, &i, arg)
			if err != nil {
				return nil, err
			}
			f.channels = n
		case arg == "--rm-scratch" && clips:
			f.rmScratch = true
		case isFlag(arg, "--timeout"):
			d, err := durationFlag(args, &i, arg)
			if err != nil {
				return nil, err
			}
			f.timeout = d
		default:
			return nil, fmt.Errorf("unknown flag: %s", arg)
		}
	}

	if f.dir == "" {
		return nil, errors.New("--dir is required (or set export.directory in the config)")
	}
	if f.format == "" {
		f.format = config.DefaultFormat
	}
	if f.base == "" {
		f.base = config.DefaultBase
	}
	if f.channels == 0 {
		f.channels = config.DefaultChannels
	}
	if f.channels != 1 && f.channels != 2 {
		return nil, fmt.Errorf("--channels must be 1 or 2, got %d", f.channels)
	}
	return f, nil
}

// runExportTracks exports every track to {base}_{n}.{format} under --dir.
func runExportTracks(ctx context.Context, cfg *config.Config, args []string) int {
	f, err := parseExportFlags(cfg, args, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audx: %v\n", err)
		return ExitUsageErr
	}
	if err := fsutil.EnsureDir(f.dir); err != nil {
		fmt.Fprintf(os.Stderr, "audx: creating %s: %v\n", f.dir, err)
		return ExitOpErr
	}

	conn := newConn(cfg, f.timeout)
	defer conn.Close()

	report, err := export.ExportTracks(ctx, script.NewSession(conn), export.TrackOptions{
		Dir:      f.dir,
		Base:     f.base,
		Ext:      f.format,
		Channels: f.channels,
	}, os.Stdout)
	if err != nil {
		return reportErr(err)
	}
	if report.Nothing() {
		return ExitOK
	}

	fmt.Printf("exported %d/%d tracks to %s\n", report.Exported, report.Total, f.dir)
	if report.Exported < report.Total {
		return ExitOpErr
	}
	return ExitOK
}

// runExportClips exports every clip on an unmuted track under --dir.
func runExportClips(ctx context.Context, cfg *config.Config, args []string) int {
	f, err := parseExportFlags(cfg, args, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audx: %v\n", err)
		return ExitUsageErr
	}
	if err := fsutil.EnsureDir(f.dir); err != nil {
		fmt.Fprintf(os.Stderr, "audx: creating %s: %v\n", f.dir, err)
		return ExitOpErr
	}

	conn := newConn(cfg, f.timeout)
	defer conn.Close()

	report, err := export.ExportClips(ctx, script.NewSession(conn), export.ClipOptions{
		Dir:           f.dir,
		Prefix:        f.prefix,
		Ext:           f.format,
		Channels:      f.channels,
		RemoveScratch: f.rmScratch,
	}, os.Stdout)
	if err != nil {
		return reportErr(err)
	}
	if report.Nothing() {
		return ExitOK
	}
	if report.Exported < report.Total {
		return ExitOpErr
	}
	return ExitOK
}
