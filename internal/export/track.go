package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
)

// TrackOptions configures a per-track export run.
type TrackOptions struct {
	Dir      string // destination directory, must exist
	Base     string // filename base; files are Base_1.Ext, Base_2.Ext, …
	Ext      string // extension without the dot
	Channels int    // 1 or 2
}

// ExportTracks solos and exports every track in turn. File numbering is
// 1-based and follows the track ordering captured once at the start of the
// run. A failing track is logged and skipped; after the loop every track is
// unmuted again regardless of individual outcomes, including when the run
// is canceled mid-loop.
func ExportTracks(ctx context.Context, s session, o TrackOptions, log io.Writer) (Report, error) {
	tracks, err := s.Tracks(ctx)
	if err != nil {
		return Report{}, err
	}
	if len(tracks) == 0 {
		fmt.Fprintln(log, "no tracks found in the current project")
		return Report{}, nil
	}

	report := Report{Total: len(tracks)}
	var runErr error

	for _, track := range tracks {
		if cerr := ctx.Err(); cerr != nil {
			runErr = cerr
			break
		}

		path := filepath.Join(o.Dir, fmt.Sprintf("%s_%d.%s", o.Base, track.Index+1, o.Ext))
		fmt.Fprintf(log, "exporting track %d/%d: %q -> %s\n", track.Index+1, len(tracks), track.Name, path)

		if err := exportOneTrack(ctx, s, track.Index, len(tracks), path, o.Channels); err != nil {
			fmt.Fprintf(log, "  track %q failed: %v\n", track.Name, err)
			continue
		}
		report.Exported++
	}

	// The listening state was trashed by the solo loop; put it back no
	// matter how the loop ended. Restoration itself must not be cut short
	// by the cancellation that ended the loop.
	if err := unmuteAll(context.WithoutCancel(ctx), s, len(tracks)); err != nil {
		err = fmt.Errorf("restoring track mute state: %w", err)
		fmt.Fprintf(log, "%v\n", err)
		runErr = errors.Join(runErr, err)
	}

	return report, runErr
}

func exportOneTrack(ctx context.Context, s session, track, total int, path string, channels int) error {
	for j := 0; j < total; j++ {
		if err := muteOnly(ctx, s, j, true); err != nil {
			return err
		}
	}
	if err := muteOnly(ctx, s, track, false); err != nil {
		return err
	}
	if err := s.SelectAll(ctx); err != nil {
		return err
	}
	return s.ExportAudio(ctx, path, channels)
}

func unmuteAll(ctx context.Context, s session, total int) error {
	for j := 0; j < total; j++ {
		if err := muteOnly(ctx, s, j, false); err != nil {
			return err
		}
	}
	return nil
}
