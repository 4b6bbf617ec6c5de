// Package locales ships the translations of report headings.
package locales

import (
	"embed"
	"errors"
	"fmt"
	"path"

	"github.com/leonelquinteros/gotext"
)

// DefaultLanguage is used when no language is configured
const DefaultLanguage = "en_US"

const domain = "default"

//go:embed */*.po
var files embed.FS

// Load returns the translations for lang
func Load(lang string) (*gotext.Po, error) {
	if lang == "" {
		lang = DefaultLanguage
	}
	data, err := files.ReadFile(path.Join(lang, domain+".po"))
	if err != nil {
		return nil, fmt.Errorf("no translations for %q: %w", lang, err)
	}
	po, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", lang, err)
	}
	return po, nil
}

// ErrInvalidTranslations is returned for a .po file without the report headings
var ErrInvalidTranslations = errors.New("translations missing report headings")

// checkKey is present in every shipped translation. gotext reports no parse
// errors, so a file that does not translate it is treated as malformed.
const checkKey = "SEED"

func parse(data []byte) (*gotext.Po, error) {
	po := gotext.NewPo()
	po.Parse(data)
	if !po.IsTranslated(checkKey) {
		return nil, ErrInvalidTranslations
	}
	return po, nil
}

// Languages returns the languages that have translations
func Languages() []string {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	return out
}
