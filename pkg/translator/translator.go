package translator

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string // catalogs for other languages are skipped; empty loads all
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}
		if !isSupported(cfg.SupportedLanguages, entry.Name()) {
			zap.L().Debug("skipping unsupported translation", zap.String("file", entry.Name()))
			continue
		}

		path := filepath.Join(cfg.TranslationFolder, entry.Name())
		if _, err := Translator.LoadMessageFile(path); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", entry.Name()), zap.Error(err))
		}
	}
}

// isSupported matches the language tag in file names such as "fr.toml" or "active.fr.toml".
func isSupported(languages []string, fileName string) bool {
	if len(languages) == 0 {
		return true
	}
	parts := strings.Split(strings.TrimSuffix(fileName, ".toml"), ".")
	tag := parts[len(parts)-1]
	for _, lang := range languages {
		if strings.EqualFold(lang, tag) {
			return true
		}
	}
	return false
}
