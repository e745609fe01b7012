package main

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ansiedit/internal/edit"
	doc "ansiedit/internal/model"
)

type Config struct {
	SaveDirectory string
	Confirmations bool
	Width         int
	Height        int
	Palette       string
	FillScope     edit.FillScope
	LogFile       string
}

func defaultConfig() *Config {
	return &Config{
		Confirmations: true,
		Width:         defaultWidth,
		Height:        defaultHeight,
		Palette:       "dos",
		FillScope:     edit.FillLayer,
	}
}

func loadConfig() *Config {
	config := defaultConfig()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return config
	}

	configPath := filepath.Join(homeDir, ".ansieditrc")
	file, err := os.Open(configPath)
	if err != nil {
		return config
	}
	defer file.Close()

	parseConfig(file, homeDir, config)
	return config
}

// parseConfig reads key = value lines into config. Unknown keys and bad
// values are ignored.
func parseConfig(r io.Reader, homeDir string, config *Config) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			config.SaveDirectory = expandPath(value, homeDir)
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		case "width":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				config.Width = n
			}
		case "height":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				config.Height = n
			}
		case "palette":
			if _, err := doc.BuiltinPalette(value); err == nil {
				config.Palette = strings.ToLower(value)
			}
		case "fill_scope", "fillscope":
			if scope, err := edit.ParseFillScope(value); err == nil {
				config.FillScope = scope
			}
		case "log_file", "logfile":
			config.LogFile = expandPath(value, homeDir)
		}
	}
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

// LogPath is where the log goes when no log_file is configured.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(os.TempDir(), "ansiedit.log")
}
