package asr

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"lingopipe/internal/dialogue"
	"lingopipe/internal/textutil"
)

// SampleRate is the recognizer's required input sample rate.
const SampleRate = 16000

// Config describes the external recognizer invocation.
type Config struct {
	// Command is the recognizer binary (default "vosk-transcriber").
	Command string
	// ModelPath points at the acoustic model directory.
	ModelPath string
	// FFmpegBinary converts source audio to recognizer input (default "ffmpeg").
	FFmpegBinary string
}

// Service provides speech recognition via an external recognizer process.
type Service struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a recognizer service with the given configuration.
func NewService(cfg Config) *Service {
	if cfg.Command == "" {
		cfg.Command = "vosk-transcriber"
	}
	if cfg.FFmpegBinary == "" {
		cfg.FFmpegBinary = "ffmpeg"
	}
	return &Service{cfg: cfg}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// ConvertToWAV extracts src into a 16kHz mono PCM WAV at dst.
func (s *Service) ConvertToWAV(ctx context.Context, src, dst string) error {
	if strings.TrimSpace(src) == "" {
		return fmt.Errorf("convert to wav: source path required")
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("convert to wav: ensure output dir: %w", err)
	}
	args := []string{
		"-i", src,
		"-ar", fmt.Sprintf("%d", SampleRate),
		"-ac", "1",
		"-y",
		dst,
	}
	if err := s.run(ctx, s.cfg.FFmpegBinary, args...); err != nil {
		return fmt.Errorf("ffmpeg: %w", err)
	}
	if _, err := os.Stat(dst); err != nil {
		return fmt.Errorf("convert to wav: output missing: %w", err)
	}
	return nil
}

// Recognize runs the recognizer over a prepared WAV file and returns the
// ordered word tokens. workDir holds the recognizer's JSON output.
func (s *Service) Recognize(ctx context.Context, wavPath, workDir string) ([]dialogue.WordToken, error) {
	if strings.TrimSpace(wavPath) == "" {
		return nil, fmt.Errorf("recognize: wav path required")
	}
	if workDir == "" {
		workDir = filepath.Dir(wavPath)
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("recognize: ensure work dir: %w", err)
	}

	// The recognizer writes its sidecar next to the work files; use an
	// ASCII-safe token so accented stems survive on any filesystem.
	baseName := textutil.SanitizeToken(strings.TrimSuffix(filepath.Base(wavPath), filepath.Ext(wavPath)))
	outputPath := filepath.Join(workDir, baseName+".json")

	args := s.buildArgs(wavPath, outputPath)
	if err := s.run(ctx, s.cfg.Command, args...); err != nil {
		return nil, fmt.Errorf("recognizer: %w", err)
	}

	tokens, err := loadRecognizerOutput(outputPath)
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func (s *Service) buildArgs(input, output string) []string {
	args := []string{"--input", input, "--output", output, "--output-type", "json"}
	if s.cfg.ModelPath != "" {
		args = append(args, "--model", s.cfg.ModelPath)
	}
	return args
}

func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// recognizerPayload tolerates both output shapes recognizers emit: a bare
// token array or a wrapper object with a "result" list.
type recognizerPayload struct {
	Result []dialogue.WordToken `json:"result"`
}

func loadRecognizerOutput(path string) ([]dialogue.WordToken, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recognizer output: %w", err)
	}

	var tokens []dialogue.WordToken
	if err := json.Unmarshal(data, &tokens); err == nil {
		return tokens, nil
	}

	var payload recognizerPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse recognizer output: %w", err)
	}
	return payload.Result, nil
}
