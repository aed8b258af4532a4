package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path"
	"sync"
	"syscall"

	"github.com/baldisbk/slamdebug/chrono"
	"github.com/baldisbk/slamdebug/debug"
	"github.com/baldisbk/slamdebug/timings"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

const (
	ConfigFile   = "debug.yaml"
	ImagesFolder = "images"
)

// Dataset layout:
//	images/*				frames, named by frame id
//	tracks.yaml				frame -> landmark -> normalized feature
//	reconstruction.yaml		camera, landmark points, world-to-camera poses
//	debug.yaml				optional debug config

func main() {
	if err := mainFunc(); err != nil {
		fmt.Printf("Failed: %#v", err)
		os.Exit(1)
	}
}

func mainFunc() error {
	dataset := pflag.StringP("dataset", "d", ".", "Path to dataset")
	configFile := pflag.StringP("config", "c", "", "Debug config (default <dataset>/"+ConfigFile+")")
	logFile := pflag.String("log", "slamdebug.log", "Log file")
	metricsOut := pflag.String("metrics-out", "", "Write lap metrics to this prometheus textfile")
	disable := pflag.Bool("disable", false, "Skip all debug rendering")
	pflag.Parse()
	if *configFile == "" {
		*configFile = path.Join(*dataset, ConfigFile)
	}

	logcfg := zap.NewDevelopmentConfig()
	logcfg.OutputPaths = []string{*logFile}
	logger, err := logcfg.Build()
	if err != nil {
		return xerrors.Errorf("logger: %w", err)
	}
	defer logger.Sync()
	sl := logger.Sugar()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// break
	var wg sync.WaitGroup
	done := make(chan struct{})
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-ctx.Done():
		case <-done:
		case <-signals:
			cancel()
		}
	}()
	defer func() {
		close(done)
		wg.Wait()
	}()

	cfg, err := debug.LoadConfig(*configFile)
	if err != nil {
		return xerrors.Errorf("config: %w", err)
	}
	if *disable {
		cfg.Enabled = false
	}
	formatter, err := timings.ParseFormat(cfg.Format, cfg.Precision)
	if err != nil {
		return xerrors.Errorf("config: %w", err)
	}

	tracks, err := debug.ReadTracks(path.Join(*dataset, debug.TracksFile))
	if err != nil {
		return xerrors.Errorf("dataset: %w", err)
	}
	rec, err := debug.ReadReconstruction(path.Join(*dataset, debug.ReconstructionFile))
	if err != nil {
		return xerrors.Errorf("dataset: %w", err)
	}
	graph := tracks.Graph()

	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush()

	frames, errs := Walk(ctx, *dataset, ImagesFolder)
	for path, err := range errs {
		sl.Errorf("Error reading frames %s: %#v", path, err)
	}
	fmt.Fprintf(stdout, "Found %d frames\n", len(frames))
	stdout.Flush()

	output := cfg.Output
	if !path.IsAbs(output) {
		output = path.Join(*dataset, output)
	}
	loader := debug.DirLoader{Root: path.Join(*dataset, ImagesFolder)}
	renderer := &debug.PNGRenderer{Dir: output, Logger: sl}
	dbg := debug.NewContext(cfg, loader, renderer, sl)

	agg := timings.NewAggregator()
	run := chrono.New()
	for i, frame := range frames {
		select {
		case <-ctx.Done():
			fmt.Fprintln(stdout)
			sl.Infof("Interrupted after %d frames", i)
			return report(stdout, agg, formatter, *metricsOut)
		default:
		}
		run.Start()
		if err := reproject(dbg, loader, rec, graph, frame, run); err != nil {
			sl.Errorf("Error reprojecting %s: %#v", frame, err)
		}
		run.Lap("reproject")
		if i+1 < len(frames) {
			if err := dbg.VisualizeGraph(graph, frame, frames[i+1]); err != nil {
				sl.Errorf("Error visualizing %s: %#v", frame, err)
			}
			run.Lap("graph")
		}
		agg.AddTimes(run.LapTimes())
		sl.Debugf("Frame %s took %s", frame, run.TotalTime())

		fmt.Fprintf(stdout, "Processed:\t%10d of %10d\r", i+1, len(frames))
		stdout.Flush()
	}
	fmt.Fprintln(stdout)

	return report(stdout, agg, formatter, *metricsOut)
}

func reproject(dbg *debug.Context, loader debug.DirLoader, rec *debug.Reconstruction,
	graph *debug.Graph, frame string, run *chrono.Chronometer) error {
	if !dbg.Enabled() {
		return nil
	}
	pose, ok := rec.Pose(frame)
	if !ok {
		return nil
	}
	points, obs := rec.FramePoints(graph, frame)
	if len(points) == 0 {
		return nil
	}
	im, err := loader.Load(frame)
	if err != nil {
		return xerrors.Errorf("load: %w", err)
	}
	title := frame
	if info, err := loader.Info(frame); err == nil && info.Camera != "" {
		title = fmt.Sprintf("%s (%s)", frame, info.Camera)
	}
	run.Lap("load")
	return dbg.ReprojectLandmarks(points, obs, pose, im, rec.Camera, title, true)
}

func report(w io.Writer, agg *timings.Aggregator, f timings.Formatter, metricsOut string) error {
	if err := agg.Report(w, f); err != nil {
		return xerrors.Errorf("report: %w", err)
	}
	if metricsOut == "" {
		return nil
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(timings.NewCollector(agg))
	if err := prometheus.WriteToTextfile(metricsOut, reg); err != nil {
		return xerrors.Errorf("metrics: %w", err)
	}
	return nil
}
