package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/nguyentantai21042004/notescribe/internal/config"
	"github.com/nguyentantai21042004/notescribe/internal/generator"
	"github.com/nguyentantai21042004/notescribe/internal/logger"
	"github.com/nguyentantai21042004/notescribe/internal/notewriter"
	"github.com/nguyentantai21042004/notescribe/internal/processor"
	"github.com/nguyentantai21042004/notescribe/internal/transcriber"
	"github.com/nguyentantai21042004/notescribe/internal/watcher"
	"github.com/nguyentantai21042004/notescribe/pkg/executor"
)

const defaultEnvFile = ".env"

type options struct {
	configPath   string
	envPath      string
	file         string
	soap         bool
	birp         bool
	instructions string
	output       string
	watchDir     string
}

func parseFlags(args []string) (options, error) {
	var opts options
	flags := flag.NewFlagSet("notescribe", flag.ContinueOnError)
	flags.StringVar(&opts.configPath, "config", "config.json", "path to the JSON or YAML config file")
	flags.StringVar(&opts.envPath, "env", defaultEnvFile, "optional .env file with provider credentials")
	flags.StringVar(&opts.file, "file", "", "audio or video file to process (skips the prompts)")
	flags.BoolVar(&opts.soap, "soap", false, "generate a SOAP note")
	flags.BoolVar(&opts.birp, "birp", false, "generate a BIRP note")
	flags.StringVar(&opts.instructions, "instructions", "", "special instructions file")
	flags.StringVar(&opts.output, "output", "", "directory for saved notes (overrides paths.output)")
	flags.StringVar(&opts.watchDir, "watch", "", "watch a directory and process every new recording")

	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, stdin io.Reader, stdout io.Writer) error {
	if err := loadEnv(opts.envPath); err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.output != "" {
		cfg.Paths.Output = opts.output
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Clinical Note Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s, CPU cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	log.Info(ctx, "Configuration loaded from %s", opts.configPath)

	if err := ensureDirectories(cfg.Paths.Output, cfg.Paths.Temp); err != nil {
		return err
	}

	trans, err := transcriber.New(cfg, executor.New(), log)
	if err != nil {
		return err
	}
	writer := notewriter.New(cfg.Paths.Output, cfg.Output.Docx, log)

	if opts.watchDir != "" {
		cfg.Watch.SOAP = cfg.Watch.SOAP || opts.soap
		cfg.Watch.BIRP = cfg.Watch.BIRP || opts.birp
		if opts.instructions != "" {
			cfg.Watch.Instructions = opts.instructions
		}

		gen, err := newGenerator(ctx, cfg, log, cfg.Watch.SOAP || cfg.Watch.BIRP)
		if err != nil {
			return err
		}
		proc := processor.New(cfg, trans, gen, writer, log)
		return runWatch(ctx, cfg, opts.watchDir, proc, log)
	}

	req := processor.Request{
		AudioPath:        opts.file,
		SOAP:             opts.soap,
		BIRP:             opts.birp,
		InstructionsPath: opts.instructions,
	}
	if opts.file == "" {
		if req, err = askRequest(stdin, stdout); err != nil {
			return err
		}
	}

	gen, err := newGenerator(ctx, cfg, log, req.SOAP || req.BIRP)
	if err != nil {
		return err
	}
	proc := processor.New(cfg, trans, gen, writer, log)

	res, err := proc.Process(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, res.Transcript)
	return nil
}

// newGenerator skips provider setup when no note was requested.
func newGenerator(ctx context.Context, cfg *config.Config, log logger.Logger, needed bool) (generator.Generator, error) {
	if !needed {
		return nil, nil
	}
	return generator.New(ctx, cfg, log)
}

func runWatch(ctx context.Context, cfg *config.Config, dir string, proc processor.Processor, log logger.Logger) error {
	if err := ensureDirectories(dir); err != nil {
		return err
	}

	w, err := watcher.New(dir, proc.ProcessFile, log, cfg.Watch.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Watch mode is ready!")
	log.Info(ctx, "Monitoring: %s", dir)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Notes: SOAP=%t BIRP=%t", cfg.Watch.SOAP, cfg.Watch.BIRP)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	err = w.Start(ctx)
	log.Info(ctx, "Watch mode stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loadEnv loads path into the environment. A missing default file is fine.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if path == defaultEnvFile && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}

func ensureDirectories(dirs ...string) error {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
