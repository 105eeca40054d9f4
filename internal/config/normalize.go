package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeASR(); err != nil {
		return err
	}
	c.normalizeAlignment()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.AudioDir, err = expandPath(c.Paths.AudioDir); err != nil {
		return fmt.Errorf("paths.audio_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DatabasePath) == "" {
		c.Paths.DatabasePath = defaultDatabasePath
	}
	if c.Paths.DatabasePath, err = expandPath(c.Paths.DatabasePath); err != nil {
		return fmt.Errorf("paths.database_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeASR() error {
	c.ASR.Command = strings.TrimSpace(c.ASR.Command)
	if c.ASR.Command == "" {
		c.ASR.Command = defaultASRCommand
	}
	if c.ASR.ModelPath == "" {
		if value, ok := os.LookupEnv("VOSK_MODEL_PATH"); ok {
			c.ASR.ModelPath = value
		}
	}
	if c.ASR.ModelPath != "" {
		expanded, err := expandPath(c.ASR.ModelPath)
		if err != nil {
			return fmt.Errorf("asr.model_path: %w", err)
		}
		c.ASR.ModelPath = expanded
	}
	c.ASR.FFmpegBinary = strings.TrimSpace(c.ASR.FFmpegBinary)
	if c.ASR.FFmpegBinary == "" {
		c.ASR.FFmpegBinary = defaultFFmpegBinary
	}
	c.ASR.FFprobeBinary = strings.TrimSpace(c.ASR.FFprobeBinary)
	if c.ASR.FFprobeBinary == "" {
		c.ASR.FFprobeBinary = defaultFFprobeBinary
	}
	return nil
}

func (c *Config) normalizeAlignment() {
	if c.Alignment.Tolerance == 0 {
		c.Alignment.Tolerance = defaultTolerance
	}
	cleaned := c.Alignment.StopWords[:0]
	for _, w := range c.Alignment.StopWords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			cleaned = append(cleaned, w)
		}
	}
	c.Alignment.StopWords = cleaned
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
