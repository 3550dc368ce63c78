package main

//// Small CLI tool that replays recorded pose frames, either through a local
//// analyzer or against a running gymxp service.

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymxp/internal/config"
	"github.com/2beens/gymxp/internal/pose"
	"github.com/2beens/gymxp/internal/repcount"
	"github.com/2beens/gymxp/pkg"
)

const maxLineSize = 1 << 20

type replayParams struct {
	framesPath string
	env        string
	configPath string
	analyzer   string
	server     string
	userID     string
	batchSize  int
	verbose    bool
}

func main() {
	params, err := parseAndValidateInput()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	log.SetOutput(os.Stdout)
	if params.verbose {
		log.SetLevel(log.DebugLevel)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	f, err := os.Open(params.framesPath)
	if err != nil {
		log.Fatalf("open frames file: %s", err)
	}
	defer f.Close()

	frames, err := readFrames(f)
	if err != nil {
		log.Fatalf("read frames: %s", err)
	}
	log.Infof("loaded %d frames from [%s]", len(frames), params.framesPath)

	if params.server != "" {
		token := os.Getenv("GYMXP_APP_SECRET")
		if token == "" {
			log.Warnln("GYMXP_APP_SECRET not set, the server will most likely reject the requests")
		}
		client := newRemoteClient(params.server, token)
		if err := replayRemote(ctx, client, params, frames, os.Stdout); err != nil {
			log.Fatalf("remote replay: %s", err)
		}
		return
	}

	counterCfg := repcount.DefaultConfig()
	if params.configPath != "" {
		cfg, err := config.Load(params.env, params.configPath)
		if err != nil {
			log.Fatalf("load config: %s", err)
		}
		counterCfg = cfg.Counter
	}

	if err := replayLocal(params.analyzer, counterCfg, frames, os.Stdout); err != nil {
		log.Fatalf("local replay: %s", err)
	}
}

func parseAndValidateInput() (replayParams, error) {
	var p replayParams
	flag.StringVar(&p.framesPath, "frames", "", "path to a JSON lines file, one pose frame per line")
	flag.StringVar(&p.env, "env", "development", "config environment [development | production]")
	flag.StringVar(&p.configPath, "config", "", "optional TOML config with the [<env>.counter] table")
	flag.StringVar(&p.analyzer, "analyzer", repcount.DefaultAnalyzer, "analyzer name")
	flag.StringVar(&p.server, "server", "", "gymxp service base URL; replays remotely when set")
	flag.StringVar(&p.userID, "user", "", "profile user id, required with -server")
	flag.IntVar(&p.batchSize, "batch", 30, "frames per upload when replaying remotely")
	flag.BoolVar(&p.verbose, "v", false, "verbose output")
	flag.Parse()

	if p.framesPath == "" {
		return p, errors.New("frames path must be provided")
	}
	if exists, err := pkg.PathExists(p.framesPath, false); err != nil {
		return p, fmt.Errorf("check frames path: %w", err)
	} else if !exists {
		return p, fmt.Errorf("frames file [%s] does not exist", p.framesPath)
	}
	if !repcount.IsValidAnalyzer(p.analyzer) {
		return p, fmt.Errorf("unknown analyzer %q, known: %v", p.analyzer, repcount.AnalyzerNames())
	}
	if p.server != "" && p.userID == "" {
		return p, errors.New("user must be provided when replaying against a server")
	}
	if p.batchSize <= 0 {
		return p, fmt.Errorf("batch size must be > 0, got %d", p.batchSize)
	}
	return p, nil
}

// readFrames parses JSON lines. Blank lines are skipped.
func readFrames(r io.Reader) ([]pose.Frame, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineSize)

	var frames []pose.Frame
	line := 0
	for scanner.Scan() {
		line++
		b := scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		var frame pose.Frame
		if err := json.Unmarshal(b, &frame); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		frames = append(frames, frame)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return frames, nil
}
