package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/soundshield/subgen/cmd/subgen/apis/ffprobe"
	"github.com/soundshield/subgen/cmd/subgen/subtitle"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

const (
	jobsQueueSize = 64
	probeTimeout  = 30 * time.Second
)

// DurationProber resolves the duration in seconds of a media file.
type DurationProber interface {
	Duration(ctx context.Context, path string) (float64, error)
}

type Config struct {
	// The directory to watch for transcripts.
	Dir string
	// How long a transcript must sit unchanged before it is processed.
	Settle time.Duration
	// The directory generated files are written to. Empty means next to
	// the transcript.
	OutputDir string
	// The subtitle format to render.
	Format    subtitle.Format
	Segmenter subtitle.SegmenterOptions
	Text      subtitle.TextOptions
}

func (c Config) IsValid() error {
	if c.Dir == "" {
		return fmt.Errorf("Dir cannot be empty")
	}

	if c.Settle <= 0 {
		return fmt.Errorf("Settle should be a positive duration")
	}

	if c.Format != "" && !c.Format.IsValid() {
		return fmt.Errorf("Format value is not valid")
	}

	return nil
}

type job struct {
	id   string
	path string
}

// Watcher picks up transcripts dropped into a directory and generates
// subtitle files for them. A transcript is processed once no further
// writes have happened to it for the configured settle period.
type Watcher struct {
	cfg    Config
	prober DurationProber

	fsw    *fsnotify.Watcher
	jobsCh chan job

	mut     sync.Mutex
	pending map[string]*time.Timer

	wg       sync.WaitGroup
	stopCh   chan struct{}
	errCh    chan error
	doneCh   chan struct{}
	doneOnce sync.Once
}

func New(cfg Config, prober DurationProber) (*Watcher, error) {
	if err := cfg.IsValid(); err != nil {
		return nil, fmt.Errorf("failed to validate config: %w", err)
	}

	if prober == nil {
		return nil, fmt.Errorf("prober should not be nil")
	}

	return &Watcher{
		cfg:     cfg,
		prober:  prober,
		jobsCh:  make(chan job, jobsQueueSize),
		pending: make(map[string]*time.Timer),
		stopCh:  make(chan struct{}),
		errCh:   make(chan error, 1),
		doneCh:  make(chan struct{}),
	}, nil
}

func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := fsw.Add(w.cfg.Dir); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("failed to watch directory: %w", err)
	}
	w.fsw = fsw

	slog.Info("watching for transcripts",
		slog.String("dir", w.cfg.Dir),
		slog.Duration("settle", w.cfg.Settle))

	w.wg.Add(3)

	go func() {
		defer w.wg.Done()
		select {
		case <-ctx.Done():
			go w.done()
		case <-w.stopCh:
		}
	}()

	go w.watchLoop()
	go w.processLoop()

	return nil
}

func (w *Watcher) watchLoop() {
	defer w.wg.Done()

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				go w.done()
				return
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !isTranscript(ev.Name) {
				continue
			}
			w.schedule(ev.Name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				go w.done()
				return
			}
			slog.Error("watch error", slog.String("err", err.Error()))
		case <-w.stopCh:
			return
		}
	}
}

// schedule arms the settle timer for the given transcript, resetting the
// countdown if one is already pending.
func (w *Watcher) schedule(path string) {
	w.mut.Lock()
	defer w.mut.Unlock()

	if timer, ok := w.pending[path]; ok {
		timer.Stop()
	}

	w.pending[path] = time.AfterFunc(w.cfg.Settle, func() {
		w.mut.Lock()
		_, ok := w.pending[path]
		if ok {
			delete(w.pending, path)
		}
		w.mut.Unlock()
		if !ok {
			return
		}

		select {
		case w.jobsCh <- job{id: uuid.NewString(), path: path}:
		default:
			slog.Warn("jobs queue is full, dropping transcript", slog.String("path", path))
		}
	})
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case j := <-w.jobsCh:
			w.process(j)
		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) process(j job) {
	slog.Info("processing transcript", slog.String("jobID", j.id), slog.String("path", j.path))

	outPath, err := w.generate(j.path)
	if err != nil {
		slog.Error("failed to generate subtitles",
			slog.String("jobID", j.id),
			slog.String("path", j.path),
			slog.String("err", err.Error()))
		return
	}

	if outPath == "" {
		slog.Info("nothing to save", slog.String("jobID", j.id), slog.String("path", j.path))
		return
	}

	slog.Info("subtitles saved", slog.String("jobID", j.id), slog.String("output", outPath))
}

func (w *Watcher) generate(path string) (string, error) {
	opts := subtitle.GenerateOptions{
		SourcePath: path,
		Format:     w.cfg.Format,
		Segmenter:  w.cfg.Segmenter,
		Text:       w.cfg.Text,
	}
	opts.SetDefaults()

	if w.cfg.OutputDir != "" {
		opts.OutputPath = filepath.Join(w.cfg.OutputDir, filepath.Base(subtitle.DeriveOutputPath(path, opts.Format)))
	} else {
		opts.OutputPath = subtitle.DeriveOutputPath(path, opts.Format)
	}

	// Rendering plain text over a plain text transcript would clobber the input.
	if opts.OutputPath == path {
		return "", fmt.Errorf("output path would overwrite the transcript")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		res, err := subtitle.LoadResult(path)
		if err != nil {
			return "", err
		}
		_, outPath, err := subtitle.GenerateFromResult(res, opts)
		return outPath, err
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read transcript: %w", err)
		}
		duration, err := w.probeDuration(path)
		if err != nil {
			return "", err
		}
		_, outPath, err := subtitle.GenerateFromText(string(data), duration, opts)
		return outPath, err
	default:
		return "", fmt.Errorf("unsupported transcript type %q", filepath.Ext(path))
	}
}

func (w *Watcher) probeDuration(transcriptPath string) (float64, error) {
	mediaPath := ffprobe.FindMediaSibling(transcriptPath)
	if mediaPath == "" {
		return 0, fmt.Errorf("no media file found next to %q", filepath.Base(transcriptPath))
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	return w.prober.Duration(ctx, mediaPath)
}

func (w *Watcher) Stop(ctx context.Context) error {
	go w.done()

	select {
	case <-w.doneCh:
		return <-w.errCh
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Watcher) Done() <-chan struct{} {
	return w.doneCh
}

func (w *Watcher) Err() error {
	select {
	case err := <-w.errCh:
		return err
	default:
		return nil
	}
}

func (w *Watcher) done() {
	w.doneOnce.Do(func() {
		w.errCh <- w.handleClose()
		close(w.doneCh)
	})
}

func (w *Watcher) handleClose() error {
	close(w.stopCh)

	w.mut.Lock()
	for path, timer := range w.pending {
		timer.Stop()
		delete(w.pending, path)
	}
	w.mut.Unlock()

	var closeErr error
	if w.fsw != nil {
		closeErr = w.fsw.Close()
	}

	w.wg.Wait()

	slog.Info("watcher stopped", slog.String("dir", w.cfg.Dir))

	if closeErr != nil {
		return fmt.Errorf("failed to close watcher: %w", closeErr)
	}

	return nil
}

func isTranscript(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".txt":
		return true
	default:
		return false
	}
}
