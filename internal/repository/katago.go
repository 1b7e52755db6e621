package repository

import (
	"bufio"
	"encoding/json"
	"os/exec"
	"sync"

	"go.uber.org/zap"

	"baduk_lab/internal/bootstrap"
	"baduk_lab/internal/domain"
)

// KatagoAnalyzer drives a KataGo analysis engine child process: requests are
// JSON lines written to its stdin, answers are JSON lines read from its
// stdout and matched back by request ID. There is no blocking wait: the
// caller hands over a callback that fires whenever the answer arrives, which
// may be long after the game has navigated elsewhere. There is no hard
// cancellation either; issuing a cheaper request for the same node is the
// only way to supersede one.
type KatagoAnalyzer struct {
	cfg    *bootstrap.Config
	log    *zap.SugaredLogger
	cmd    *exec.Cmd
	stdin  *bufio.Writer
	stdout *bufio.Scanner
	mu     sync.Mutex
	// pending maps request ID to its attach callback.
	pending sync.Map
}

func NewKatagoAnalyzer(cfg *bootstrap.Config, log *zap.SugaredLogger) (*KatagoAnalyzer, error) {
	cmd := exec.Command(
		cfg.KatagoPath,
		"analysis",
		"-model", cfg.KatagoModel,
		"-config", cfg.KatagoConfig,
	)

	stdinPipe, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	k := &KatagoAnalyzer{
		cfg:    cfg,
		log:    log,
		cmd:    cmd,
		stdin:  bufio.NewWriter(stdinPipe),
		stdout: bufio.NewScanner(stdoutPipe),
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	go k.listenForResponses()

	return k, nil
}

func (k *KatagoAnalyzer) listenForResponses() {
	for k.stdout.Scan() {
		line := k.stdout.Text()

		var resp domain.AnalysisResponse
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			k.log.Errorw("failed to unmarshal katago response", "error", err, "line", line)
			continue
		}
		if resp.Error != "" {
			k.log.Warnw("katago rejected query", "id", resp.ID, "error", resp.Error)
			k.pending.Delete(resp.ID)
			continue
		}

		cb, ok := k.pending.Load(resp.ID)
		if !ok {
			k.log.Warnw("no callback registered for response id", "id", resp.ID)
			continue
		}
		// Partial results keep streaming in while the search runs; the final
		// answer releases the callback slot.
		if !resp.IsDuringSearch {
			k.pending.Delete(resp.ID)
		}
		cb.(func(domain.AnalysisResponse))(resp)
	}
}

// Analyze queues one request. A second request with the same ID replaces the
// previous callback, so re-analyzing a node supersedes the older query's
// delivery.
func (k *KatagoAnalyzer) Analyze(req domain.AnalysisRequest, attach func(domain.AnalysisResponse)) error {
	requestJSON, err := json.Marshal(req)
	if err != nil {
		return err
	}

	k.pending.Store(req.ID, attach)

	k.mu.Lock()
	defer k.mu.Unlock()
	if _, err = k.stdin.Write(append(requestJSON, '\n')); err != nil {
		k.pending.Delete(req.ID)
		return err
	}
	return k.stdin.Flush()
}

// Close terminates the engine process.
func (k *KatagoAnalyzer) Close() error {
	if k.cmd.Process != nil {
		return k.cmd.Process.Kill()
	}
	return nil
}
