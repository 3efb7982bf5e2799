package export

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"audx/internal/fsutil"
	"audx/internal/script"
)

// scratchClearEnd bounds the delete that clears leftover content from the
// scratch track between clips. The stock script used 100s, which silently
// truncated longer material.
const scratchClearEnd = 3600.0

// ClipOptions configures a per-clip export run.
type ClipOptions struct {
	Dir           string // destination directory, must exist
	Prefix        string // optional filename prefix
	Ext           string // extension without the dot
	Channels      int    // 1 or 2
	RemoveScratch bool   // delete the staging track after the run
}

// ExportClips exports every clip on an unmuted track to its own file.
// Clips are never exported from their native track: overlapping selections
// across tracks would bleed into the output, so each clip is copied into a
// dedicated scratch track appended to the project and exported from there
// in isolation. Per-clip failures are logged and counted; the loop always
// reaches the next clip.
func ExportClips(ctx context.Context, s session, o ClipOptions, log io.Writer) (Report, error) {
	tracks, err := s.Tracks(ctx)
	if err != nil {
		return Report{}, err
	}
	muted := make(map[int]bool, len(tracks))
	for _, t := range tracks {
		muted[t.Index] = t.Mute
	}

	clips, err := s.Clips(ctx)
	if err != nil {
		return Report{}, err
	}

	var report Report
	candidates := make([]script.ClipInfo, 0, len(clips))
	for _, clip := range clips {
		switch {
		case muted[clip.Track]:
			// An absent mute entry means unmuted, so only a known muted
			// track excludes its clips.
			fmt.Fprintf(log, "skipping clip %q: track %d is muted\n", clip.Name, clip.Track+1)
			report.Skipped++
		case clip.Track < 0 || clip.Start < 0 || clip.End <= clip.Start:
			fmt.Fprintf(log, "skipping clip %q: invalid timing (track=%d start=%v end=%v)\n",
				clip.Name, clip.Track, clip.Start, clip.End)
			report.Skipped++
		default:
			candidates = append(candidates, clip)
		}
	}

	if len(candidates) == 0 {
		fmt.Fprintln(log, "no clips to export from unmuted tracks")
		return report, nil
	}
	report.Total = len(candidates)

	scratch, err := createScratchTrack(ctx, s, log)
	if err != nil {
		return report, err
	}
	if o.RemoveScratch {
		defer removeScratchTrack(context.WithoutCancel(ctx), s, scratch, log)
	}

	// Single mute pass over the refreshed track list: everything silent
	// except the staging track.
	for t := 0; t <= scratch; t++ {
		if err := s.SelectNone(ctx); err != nil {
			return report, err
		}
		if err := muteOnly(ctx, s, t, t != scratch); err != nil {
			return report, err
		}
	}

	for i, clip := range candidates {
		if cerr := ctx.Err(); cerr != nil {
			return report, cerr
		}

		stem := o.Prefix + fsutil.Sanitize(clip.Name)
		path := fsutil.UniquePath(o.Dir, stem, o.Ext)
		fmt.Fprintf(log, "exporting clip %d/%d: %q (track %d, %.3fs-%.3fs) -> %s\n",
			i+1, len(candidates), clip.Name, clip.Track+1, clip.Start, clip.End, path)

		if err := exportOneClip(ctx, s, clip, scratch, path, o.Channels); err != nil {
			fmt.Fprintf(log, "  clip %q failed: %v\n", clip.Name, err)
			continue
		}
		report.Exported++
	}

	fmt.Fprintf(log, "exported %d/%d clips\n", report.Exported, report.Total)
	return report, nil
}

// createScratchTrack appends a stereo staging track and returns its index.
// The track gets a recognizable unique name so leftovers from interrupted
// runs can be told apart.
func createScratchTrack(ctx context.Context, s session, log io.Writer) (int, error) {
	if err := s.NewStereoTrack(ctx); err != nil {
		return 0, fmt.Errorf("creating scratch track: %w", err)
	}

	// Track indices shifted; re-query rather than trusting the old count.
	tracks, err := s.Tracks(ctx)
	if err != nil {
		return 0, err
	}
	scratch := len(tracks) - 1

	name := "audx scratch " + uuid.NewString()[:8]
	if err := s.SelectNone(ctx); err != nil {
		return 0, err
	}
	if err := s.SelectTracks(ctx, scratch, 1, "Set"); err != nil {
		return 0, err
	}
	if err := s.SetTrackStatus(ctx, script.TrackStatus{Name: script.String(name)}); err != nil {
		return 0, err
	}

	fmt.Fprintf(log, "created scratch track %q at index %d\n", name, scratch)
	return scratch, nil
}

func removeScratchTrack(ctx context.Context, s session, scratch int, log io.Writer) {
	if err := s.SelectNone(ctx); err == nil {
		if err := s.SelectTracks(ctx, scratch, 1, "Set"); err == nil {
			if err := s.RemoveTracks(ctx); err == nil {
				fmt.Fprintln(log, "removed scratch track")
				return
			}
		}
	}
	fmt.Fprintln(log, "warning: could not remove scratch track; delete it manually")
}

func exportOneClip(ctx context.Context, s session, clip script.ClipInfo, scratch int, path string, channels int) error {
	// Copy the clip from its native track.
	if err := s.SelectNone(ctx); err != nil {
		return err
	}
	if err := s.SelectTracks(ctx, clip.Track, 1, "Set"); err != nil {
		return err
	}
	if err := s.SelectTime(ctx, clip.Start, clip.End, "ProjectStart"); err != nil {
		return err
	}
	if err := s.Copy(ctx); err != nil {
		return err
	}

	// Clear whatever the previous clip left on the scratch track.
	if err := s.SelectNone(ctx); err != nil {
		return err
	}
	if err := s.SelectTracks(ctx, scratch, 1, "Set"); err != nil {
		return err
	}
	if err := s.SelectTime(ctx, 0, scratchClearEnd, "ProjectStart"); err != nil {
		return err
	}
	if err := s.Delete(ctx); err != nil {
		return err
	}

	// Paste at the scratch track origin.
	if err := s.SelectNone(ctx); err != nil {
		return err
	}
	if err := s.SelectTracks(ctx, scratch, 1, "Set"); err != nil {
		return err
	}
	if err := s.Paste(ctx); err != nil {
		return err
	}

	// Export exactly the pasted duration.
	if err := s.SelectNone(ctx); err != nil {
		return err
	}
	if err := s.SelectTracks(ctx, scratch, 1, "Set"); err != nil {
		return err
	}
	if err := s.SelectTime(ctx, 0, clip.End-clip.Start, "ProjectStart"); err != nil {
		return err
	}
	return s.ExportAudio(ctx, path, channels)
}
