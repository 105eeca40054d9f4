package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"lingopipe/internal/align"
	"lingopipe/internal/asr"
	"lingopipe/internal/config"
	"lingopipe/internal/dialogue"
	"lingopipe/internal/estimate"
	"lingopipe/internal/journal"
	"lingopipe/internal/media/ffprobe"
	"lingopipe/internal/punct"
	"lingopipe/internal/textutil"
)

// Result summarizes one processed audio file.
type Result struct {
	RunID       string
	DialogueID  string
	AudioPath   string
	PhraseCount int
	WordCount   int
	Document    string
	Auto        string
	Adjusted    string
}

// Processor runs the timestamp pipeline.
type Processor struct {
	cfg        *config.Config
	logger     *slog.Logger
	recognizer *asr.Service
	aligner    *align.Aligner
	store      *journal.Store
	probe      func(ctx context.Context, path string) (float64, error)
}

// NewProcessor wires a processor from configuration. The journal store is
// optional; without one, runs are simply not recorded.
func NewProcessor(cfg *config.Config, logger *slog.Logger) *Processor {
	p := &Processor{
		cfg:    cfg,
		logger: logger,
		recognizer: asr.NewService(asr.Config{
			Command:      cfg.ASR.Command,
			ModelPath:    cfg.ASR.ModelPath,
			FFmpegBinary: cfg.ASR.FFmpegBinary,
		}),
		aligner: align.New(logger, align.Options{
			Tolerance: cfg.Alignment.Tolerance,
			StopWords: cfg.Alignment.StopWords,
		}),
	}
	p.probe = func(ctx context.Context, path string) (float64, error) {
		result, err := ffprobe.Inspect(ctx, cfg.ASR.FFprobeBinary, path)
		if err != nil {
			return 0, err
		}
		return result.DurationSeconds(), nil
	}
	return p
}

// WithJournal attaches a run journal.
func (p *Processor) WithJournal(store *journal.Store) {
	p.store = store
}

// WithProbe overrides the media duration probe.
func (p *Processor) WithProbe(probe func(ctx context.Context, path string) (float64, error)) {
	p.probe = probe
}

// Recognizer exposes the ASR service so callers can tune it.
func (p *Processor) Recognizer() *asr.Service {
	return p.recognizer
}

// ProcessOptions trims steps off the full pipeline.
type ProcessOptions struct {
	// SkipAuto leaves out the recognizer-grouped companion document.
	SkipAuto bool
	// SkipAdjust stops after the token logs, keeping the proportional
	// estimate as the canonical document.
	SkipAdjust bool
}

// ProcessAudio runs the complete pipeline for one audio file: estimate a
// timeline from the script, recognize speech, write token logs, build the
// recognizer-grouped document, and align the estimated timeline against
// the tokens. The aligned document replaces the estimated one, with the
// estimate preserved as a backup.
func (p *Processor) ProcessAudio(ctx context.Context, audioPath string, opts ProcessOptions) (*Result, error) {
	id, ok := dialogue.ExtractID(filepath.Base(audioPath))
	if !ok {
		return nil, fmt.Errorf("extract dialogue id from %q", filepath.Base(audioPath))
	}

	result := &Result{RunID: uuid.NewString(), DialogueID: id, AudioPath: audioPath}
	runRow := p.recordStart(ctx, result.RunID, id, journal.OpTimestamps, audioPath)

	err := p.processAudio(ctx, audioPath, id, result, opts)
	p.recordResult(ctx, runRow, result, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (p *Processor) processAudio(ctx context.Context, audioPath, id string, result *Result, opts ProcessOptions) error {
	outDir := filepath.Dir(audioPath)

	script, err := p.findScript(outDir, id)
	if err != nil {
		return err
	}

	duration, err := p.probe(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("probe duration: %w", err)
	}
	if duration <= 0 {
		return fmt.Errorf("audio %q has no measurable duration", audioPath)
	}

	vocab := estimate.VocabularyFromScript(script)
	estimated := dialogue.Document{
		ID:                   id,
		TopicWord:            script.TopicWord,
		TopicWordTranslation: script.TopicWordTranslation,
		CommonWords:          script.CommonWords,
		Dialogue:             estimate.Timeline(duration, script, vocab),
	}

	result.Document = dialogue.DocumentPath(outDir, id)
	if err := dialogue.SaveDocument(result.Document, estimated); err != nil {
		return fmt.Errorf("save estimated document: %w", err)
	}
	p.logger.Info("estimated timeline written",
		"dialogue", id, "phrases", len(estimated.Dialogue), "duration", duration)

	tokens, err := p.recognize(ctx, audioPath, id, script)
	if err != nil {
		return err
	}
	result.WordCount = len(tokens)

	if err := dialogue.SaveTokens(dialogue.TokensPath(outDir, id), tokens); err != nil {
		return fmt.Errorf("save word tokens: %w", err)
	}
	if err := dialogue.WriteTokenCSV(dialogue.TokensCSVPath(outDir, id), tokens); err != nil {
		return fmt.Errorf("write token csv: %w", err)
	}

	if !opts.SkipAuto {
		auto := estimated
		auto.Dialogue = asr.AnnotateVietWords(asr.GroupPhrases(tokens, asr.MaxWordsPerPhrase), vocab)
		result.Auto = dialogue.AutoPath(outDir, id)
		if err := dialogue.SaveDocument(result.Auto, auto); err != nil {
			return fmt.Errorf("save auto document: %w", err)
		}
	}

	result.PhraseCount = len(estimated.Dialogue)
	if opts.SkipAdjust {
		p.logger.Info("audio processed without alignment",
			"dialogue", id, "words", result.WordCount, "phrases", result.PhraseCount)
		return nil
	}

	adjusted := p.aligner.AlignSimple(estimated, tokens)
	result.PhraseCount = len(adjusted.Dialogue)
	result.Adjusted = dialogue.AdjustedPath(outDir, id)
	if err := p.promote(outDir, id, adjusted, result.Adjusted); err != nil {
		return err
	}

	p.logger.Info("audio processed",
		"dialogue", id, "words", result.WordCount, "phrases", result.PhraseCount)
	return nil
}

// AlignOptions selects the matching mode and the promotion behavior for a
// re-alignment run.
type AlignOptions struct {
	// Simple uses anchor-word matching only, the batch pipeline's mode,
	// instead of the full strategy chain.
	Simple bool
	// NoReplace writes the adjusted companion but leaves the canonical
	// document untouched.
	NoReplace bool
}

// AlignDocument re-aligns an existing estimated document in dir against
// previously saved word tokens, using the full strategy chain.
func (p *Processor) AlignDocument(ctx context.Context, dir, id string, opts AlignOptions) (*Result, error) {
	result := &Result{RunID: uuid.NewString(), DialogueID: id}
	runRow := p.recordStart(ctx, result.RunID, id, journal.OpAlign, "")

	err := p.alignDocument(dir, id, result, opts)
	p.recordResult(ctx, runRow, result, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (p *Processor) alignDocument(dir, id string, result *Result, opts AlignOptions) error {
	result.Document = dialogue.DocumentPath(dir, id)
	doc, err := dialogue.LoadDocument(result.Document)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	tokens, err := dialogue.LoadTokens(dialogue.TokensPath(dir, id))
	if err != nil {
		return fmt.Errorf("load word tokens: %w", err)
	}
	result.WordCount = len(tokens)

	var adjusted dialogue.Document
	if opts.Simple {
		adjusted = p.aligner.AlignSimple(doc, tokens)
	} else {
		adjusted = p.aligner.Align(doc, tokens)
	}
	result.PhraseCount = len(adjusted.Dialogue)
	result.Adjusted = dialogue.AdjustedPath(dir, id)
	if opts.NoReplace {
		if err := dialogue.SaveDocument(result.Adjusted, adjusted); err != nil {
			return fmt.Errorf("save adjusted document: %w", err)
		}
	} else if err := p.promote(dir, id, adjusted, result.Adjusted); err != nil {
		return err
	}

	p.logger.Info("document aligned", "dialogue", id, "phrases", result.PhraseCount)
	return nil
}

// StripPunctuation writes the no-punctuation variant of a document and
// reports whether anything changed.
func (p *Processor) StripPunctuation(ctx context.Context, dir, id string) (string, bool, error) {
	result := &Result{RunID: uuid.NewString(), DialogueID: id}
	runRow := p.recordStart(ctx, result.RunID, id, journal.OpStripPunct, "")

	doc, err := dialogue.LoadDocument(dialogue.DocumentPath(dir, id))
	if err != nil {
		p.recordResult(ctx, runRow, result, err)
		return "", false, fmt.Errorf("load document: %w", err)
	}

	stripped, modified := punct.StripDocument(doc)
	result.PhraseCount = len(stripped.Dialogue)

	path := dialogue.NoPunctuationPath(dir, id)
	if modified {
		if err := dialogue.SaveDocument(path, stripped); err != nil {
			p.recordResult(ctx, runRow, result, err)
			return "", false, fmt.Errorf("save stripped document: %w", err)
		}
	}
	p.recordResult(ctx, runRow, result, nil)
	return path, modified, nil
}

// promote saves the adjusted document, backs up the current one, and
// replaces it with the adjusted version.
func (p *Processor) promote(dir, id string, adjusted dialogue.Document, adjustedPath string) error {
	if err := dialogue.SaveDocument(adjustedPath, adjusted); err != nil {
		return fmt.Errorf("save adjusted document: %w", err)
	}

	docPath := dialogue.DocumentPath(dir, id)
	if p.cfg.Alignment.KeepBackups {
		if err := dialogue.CopyFile(docPath, dialogue.BackupPath(dir, id)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("back up document: %w", err)
		}
	}
	if err := dialogue.SaveDocument(docPath, adjusted); err != nil {
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

// recognize converts the audio to a mono 16 kHz WAV, runs the recognizer,
// and labels the resulting tokens with speakers.
func (p *Processor) recognize(ctx context.Context, audioPath, id string, script dialogue.Script) ([]dialogue.WordToken, error) {
	workDir := p.cfg.Paths.WorkDir
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("create work directory: %w", err)
	}

	wavPath := filepath.Join(workDir, textutil.SanitizeFileName(id)+".wav")
	if err := p.recognizer.ConvertToWAV(ctx, audioPath, wavPath); err != nil {
		return nil, fmt.Errorf("convert to wav: %w", err)
	}

	tokens, err := p.recognizer.Recognize(ctx, wavPath, workDir)
	if err != nil {
		return nil, fmt.Errorf("recognize speech: %w", err)
	}

	return asr.AssignSpeakers(tokens, script), nil
}

// findScript looks for the authored script next to the audio first, then
// in the configured audio directory.
func (p *Processor) findScript(dir, id string) (dialogue.Script, error) {
	script, err := dialogue.FindScript(dir, id)
	if err == nil {
		return script, nil
	}
	if errors.Is(err, dialogue.ErrNotFound) && p.cfg.Paths.AudioDir != dir {
		return dialogue.FindScript(p.cfg.Paths.AudioDir, id)
	}
	return dialogue.Script{}, err
}

func (p *Processor) recordStart(ctx context.Context, runID, dialogueID string, op journal.Operation, audioPath string) *journal.Run {
	if p.store == nil {
		return nil
	}
	run, err := p.store.RecordStart(ctx, runID, dialogueID, op, audioPath)
	if err != nil {
		p.logger.Warn("journal start failed", "dialogue", dialogueID, "error", err)
		return nil
	}
	return run
}

func (p *Processor) recordResult(ctx context.Context, run *journal.Run, result *Result, runErr error) {
	if p.store == nil || run == nil {
		return
	}
	message := ""
	if runErr != nil {
		message = runErr.Error()
	}
	if err := p.store.RecordResult(ctx, run.ID, result.PhraseCount, result.WordCount, message); err != nil {
		p.logger.Warn("journal result failed", "dialogue", result.DialogueID, "error", err)
	}
}
