package main

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dashscribe/internal/library"
	"dashscribe/internal/media"
	"dashscribe/internal/pipeline"
	"dashscribe/internal/storage"
	"dashscribe/internal/transcribe"
)

// newPipeline wires the ingestion pipeline from configuration.
func (a *app) newPipeline(db *sql.DB) (*pipeline.Pipeline, error) {
	tcfg, err := transcribe.NewConfig(a.cfg.WhisperModel, a.cfg.WhisperModelDir, a.cfg.WhisperOptions)
	if err != nil {
		return nil, err
	}
	pcfg, err := pipeline.NewConfig(tcfg, a.cfg.GPSVariant, a.cfg.ThumbnailWidth)
	if err != nil {
		return nil, err
	}

	engine := transcribe.NewWhisperServer(a.cfg.WhisperURL, a.cfg.WhisperWeightsURL)
	return pipeline.NewPipeline(
		pcfg,
		media.NewFFmpeg(a.cfg.FFmpegPath, a.cfg.FFprobePath),
		transcribe.NewTranscriber(engine),
		storage.NewIngestRepo(db),
	), nil
}

// resolveJob pairs a video with its companion files. Explicit paths win;
// anything left empty is discovered next to the video.
func resolveJob(videoPath, gpsPath, audioPath string) (pipeline.Job, error) {
	if gpsPath == "" {
		rec, err := library.Resolve(videoPath)
		if err != nil {
			return pipeline.Job{}, err
		}
		gpsPath = rec.GPSPath
		if audioPath == "" {
			audioPath = rec.AudioPath
		}
	}
	if audioPath == "" {
		audioPath = strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + library.AudioExt
	}
	return pipeline.Job{VideoPath: videoPath, AudioPath: audioPath, GPSPath: gpsPath}, nil
}

func printResult(cmd *cobra.Command, label string, res *storage.IngestResult) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: video=%d transcription=%d segments=%d words=%d gps_points=%d\n",
		label, res.VideoID, res.TranscriptionID, res.Segments, res.Words, res.GPSPoints)
}

func ingestCommand(a *app) *cobra.Command {
	var gpsPath, audioPath string

	cmd := &cobra.Command{
		Use:   "ingest [video]",
		Short: "Ingest one dashcam recording",
		Long: `Extract audio from a video, transcribe it, thumbnail every segment,
parse the GPS log and store everything in one transaction.

Without --gps the log is looked up next to the video as
"<name> - Interpolated.csv" or "<name>.csv".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := resolveJob(args[0], gpsPath, audioPath)
			if err != nil {
				return err
			}

			db, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			p, err := a.newPipeline(db)
			if err != nil {
				return err
			}
			res, err := p.Process(cmd.Context(), job)
			if err != nil {
				return err
			}
			printResult(cmd, job.VideoPath, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&gpsPath, "gps", "", "Path to the GPS log (default: discovered next to the video)")
	cmd.Flags().StringVar(&audioPath, "audio", "", "Path for the extracted audio (default: video name with "+library.AudioExt+")")

	return cmd
}

func ingestDirCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest-dir [root]",
		Short: "Ingest every recording under a directory",
		Long: `Walk a directory tree and ingest every video that has a GPS log next to it.
Videos without a log are reported and skipped. A failed recording does not
stop the run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			recordings, skipped, err := library.Scan(ctx, args[0])
			if err != nil {
				return err
			}
			for _, s := range skipped {
				a.logger.WarnContext(ctx, "skipping video", "video", s.VideoPath, "reason", s.Reason)
			}
			if len(recordings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no recordings found")
				return nil
			}

			db, err := a.openStore(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			p, err := a.newPipeline(db)
			if err != nil {
				return err
			}

			jobs := make([]pipeline.Job, len(recordings))
			for i, rec := range recordings {
				jobs[i] = pipeline.Job{VideoPath: rec.VideoPath, AudioPath: rec.AudioPath, GPSPath: rec.GPSPath}
			}
			results, err := p.ProcessAll(ctx, jobs)
			for _, res := range results {
				printResult(cmd, "ingested", res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d recordings ingested, %d skipped\n", len(results), len(jobs), len(skipped))
			return err
		},
	}
}
