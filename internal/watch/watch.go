package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ryan-gang/bookmark-convert/internal/config"
	"github.com/ryan-gang/bookmark-convert/internal/converter"
	"github.com/ryan-gang/bookmark-convert/internal/encoder"
	"github.com/ryan-gang/bookmark-convert/internal/logger"
	"github.com/ryan-gang/bookmark-convert/internal/source"
	"github.com/ryan-gang/bookmark-convert/internal/util"
)

// Watcher periodically converts new or changed exports found under the
// configured watch path.
type Watcher struct {
	cfg       config.ConfigProvider
	converter *converter.Converter
	processor *Processor
	logger    logger.LoggerInterface
	out       io.Writer
	now       func() time.Time
}

func New(cfg config.ConfigProvider, conv *converter.Converter, log logger.LoggerInterface, out io.Writer) (*Watcher, error) {
	processor, err := NewProcessor(cfg.GetStatePath())
	if err != nil {
		return nil, fmt.Errorf("failed to create export processor: %w", err)
	}
	if out == nil {
		out = os.Stdout
	}
	return &Watcher{
		cfg:       cfg,
		converter: conv,
		processor: processor,
		logger:    log,
		out:       out,
		now:       time.Now,
	}, nil
}

// Start processes the watch path once and then on every tick until ctx is
// cancelled or the process receives SIGINT/SIGTERM.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.validateConfiguration(); err != nil {
		return err
	}
	if err := w.writePidFile(); err != nil {
		return fmt.Errorf("failed to write PID file: %v", err)
	}
	defer w.cleanup()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	interval := time.Duration(w.cfg.GetWatchInterval()) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.logStartupInfo()
	w.process()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Watcher stopping")
			util.Cyan.Fprintln(w.out, "Watcher stopped")
			return nil
		case <-ticker.C:
			w.logger.Info("Starting export check cycle")
			util.Cyan.Fprintf(w.out, "Checking exports at %s\n", w.now().Format("2006-01-02 15:04:05"))
			w.process()
		}
	}
}

func (w *Watcher) validateConfiguration() error {
	if w.cfg.GetWatchPath() == "" {
		return fmt.Errorf("watch path is not configured")
	}
	if w.cfg.GetWatchInterval() <= 0 {
		return fmt.Errorf("watch interval must be positive")
	}
	if pid, running := w.Status(); running {
		return fmt.Errorf("watcher is already running (PID %d)", pid)
	}
	return nil
}

func (w *Watcher) logStartupInfo() {
	util.GreenBold.Fprintf(w.out, "Watcher started, checking exports every %d minutes\n", w.cfg.GetWatchInterval())
	util.Cyan.Fprintf(w.out, "Watching: %s\n", w.cfg.GetWatchPath())
	util.Cyan.Fprintf(w.out, "Format: %s\n", w.cfg.GetDefaultFormat())

	w.logger.Infof("Watcher started with PID %d", os.Getpid())
	w.logger.Infof("Watching %s every %d minutes", w.cfg.GetWatchPath(), w.cfg.GetWatchInterval())
}

func (w *Watcher) process() {
	converted, err := w.ProcessOnce()
	if err != nil {
		w.logger.Errorf("Error checking exports: %v", err)
		util.Red.Fprintf(w.out, "Error checking exports: %v\n", err)
		return
	}
	if converted == 0 {
		w.logger.Info("No new exports found")
		return
	}
	util.GreenBold.Fprintf(w.out, "Converted %d new exports\n", converted)
}

// ProcessOnce converts every export whose content has not been seen yet and
// returns how many were converted.
func (w *Watcher) ProcessOnce() (int, error) {
	files, err := source.Discover(w.cfg.GetWatchPath())
	if err != nil {
		return 0, err
	}

	fresh, hashes, err := w.processor.FilterNew(files)
	if err != nil {
		return 0, err
	}
	if len(fresh) == 0 {
		return 0, nil
	}
	w.logger.Infof("Found %d new exports to convert", len(fresh))

	opts := encoder.Options{Writer: w.out, Locale: w.cfg.GetLocale()}
	converted := 0
	for _, file := range fresh {
		result, err := w.converter.Convert(file, w.cfg.GetDefaultFormat(), w.target(file), opts)
		if err != nil {
			if errors.Is(err, encoder.ErrUnsupportedFormat) {
				return converted, err
			}
			w.logger.Errorf("Converting %s failed: %v", file, err)
			continue
		}

		output := ""
		if result != nil {
			output = result.Output
			converted++
		}
		if err := w.processor.MarkProcessed(file, hashes[file], output, w.now()); err != nil {
			w.logger.Warnf("Failed to save processed state: %v", err)
		}
	}
	return converted, nil
}

// target places the output in the configured directory, or next to the
// export, named after the export.
func (w *Watcher) target(file string) string {
	dir := w.cfg.GetOutputDir()
	if dir == "" {
		dir = filepath.Dir(file)
	}
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return filepath.Join(dir, base)
}

// Status reports the PID recorded in the pid file and whether it is alive.
func (w *Watcher) Status() (int, bool) {
	return readPid(w.cfg.GetPidFile())
}

// Stop signals a running watcher to exit.
func (w *Watcher) Stop() error {
	pid, running := w.Status()
	if !running {
		return fmt.Errorf("watcher is not running")
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return process.Signal(syscall.SIGTERM)
}

func readPid(pidFile string) (int, bool) {
	if pidFile == "" {
		return 0, false
	}

	pidData, err := os.ReadFile(pidFile)
	if err != nil {
		return 0, false
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(pidData)))
	if err != nil {
		return 0, false
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return pid, false
	}

	// Send signal 0 to check if process exists
	err = process.Signal(syscall.Signal(0))
	return pid, err == nil
}

func (w *Watcher) writePidFile() error {
	pidFile := w.cfg.GetPidFile()
	if pidFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(pidFile), 0755); err != nil {
		return err
	}
	return os.WriteFile(pidFile, []byte(strconv.Itoa(os.Getpid())), 0644)
}

func (w *Watcher) cleanup() {
	if w.cfg.GetPidFile() != "" {
		os.Remove(w.cfg.GetPidFile())
	}
}

// Processed returns the exports converted so far.
func (w *Watcher) Processed() []ProcessedExport {
	return w.processor.Processed()
}
