// Package translator holds the i18n bundle backing the API's translated
// error messages. Message files are flat toml key/value files, one per
// language, loaded once at startup.
package translator

import (
	"os"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Translator is the shared bundle; localizers resolve against it with
// English as the final fallback.
var Translator *i18n.Bundle

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

// InitTranslator builds the bundle from every file in the translation
// folder. A missing folder or an unreadable file is logged and skipped so
// startup never fails on translations alone; unresolved message keys fall
// back to the key itself at lookup time.
func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Error("failed to read translation folder",
			zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(cfg.TranslationFolder, entry.Name())
		if _, err := Translator.LoadMessageFile(path); err != nil {
			zap.L().Warn("failed to load translation file",
				zap.String("file", entry.Name()), zap.Error(err))
		}
	}
}
