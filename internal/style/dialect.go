package style

import (
	"path/filepath"
	"strings"

	"github.com/src-d/enry/v2"
)

// Family groups dialects by the kind of content they hold.
type Family string

const (
	// FamilyScript covers JavaScript, TypeScript, and their JSX variants.
	FamilyScript Family = "script"
	// FamilyMarkup covers HTML and single-file component templates.
	FamilyMarkup Family = "markup"
	// FamilyStyle covers stylesheet languages.
	FamilyStyle Family = "style"
	// FamilyDoc covers data and documentation formats.
	FamilyDoc Family = "doc"
)

// Engine parser names. These are passed verbatim as the engine's
// --parser argument.
const (
	parserBabel      = "babel"
	parserTypescript = "typescript"
	parserJSON       = "json"
	parserHTML       = "html"
	parserVue        = "vue"
	parserCSS        = "css"
	parserSCSS       = "scss"
	parserLess       = "less"
	parserMarkdown   = "markdown"
	parserYAML       = "yaml"
)

// Dialect is the resolved source language family and engine parser.
type Dialect struct {
	Family Family `json:"family"`
	Parser string `json:"parser"`
}

// dialectByExtension is the fixed extension table consulted first.
// Unknown extensions deliberately fall back to the script dialect so
// generated snippets with ad-hoc names still format.
var dialectByExtension = map[string]Dialect{
	".js":       {Family: FamilyScript, Parser: parserBabel},
	".jsx":      {Family: FamilyScript, Parser: parserBabel},
	".mjs":      {Family: FamilyScript, Parser: parserBabel},
	".cjs":      {Family: FamilyScript, Parser: parserBabel},
	".ts":       {Family: FamilyScript, Parser: parserTypescript},
	".tsx":      {Family: FamilyScript, Parser: parserTypescript},
	".mts":      {Family: FamilyScript, Parser: parserTypescript},
	".cts":      {Family: FamilyScript, Parser: parserTypescript},
	".html":     {Family: FamilyMarkup, Parser: parserHTML},
	".htm":      {Family: FamilyMarkup, Parser: parserHTML},
	".vue":      {Family: FamilyMarkup, Parser: parserVue},
	".css":      {Family: FamilyStyle, Parser: parserCSS},
	".scss":     {Family: FamilyStyle, Parser: parserSCSS},
	".less":     {Family: FamilyStyle, Parser: parserLess},
	".json":     {Family: FamilyDoc, Parser: parserJSON},
	".md":       {Family: FamilyDoc, Parser: parserMarkdown},
	".markdown": {Family: FamilyDoc, Parser: parserMarkdown},
	".yaml":     {Family: FamilyDoc, Parser: parserYAML},
	".yml":      {Family: FamilyDoc, Parser: parserYAML},
}

// dialectByLanguage maps enry language names to dialects for the
// no-filename path.
var dialectByLanguage = map[string]Dialect{
	"JavaScript": {Family: FamilyScript, Parser: parserBabel},
	"JSX":        {Family: FamilyScript, Parser: parserBabel},
	"TypeScript": {Family: FamilyScript, Parser: parserTypescript},
	"TSX":        {Family: FamilyScript, Parser: parserTypescript},
	"HTML":       {Family: FamilyMarkup, Parser: parserHTML},
	"Vue":        {Family: FamilyMarkup, Parser: parserVue},
	"CSS":        {Family: FamilyStyle, Parser: parserCSS},
	"SCSS":       {Family: FamilyStyle, Parser: parserSCSS},
	"Less":       {Family: FamilyStyle, Parser: parserLess},
	"JSON":       {Family: FamilyDoc, Parser: parserJSON},
	"Markdown":   {Family: FamilyDoc, Parser: parserMarkdown},
	"YAML":       {Family: FamilyDoc, Parser: parserYAML},
}

// defaultDialect is used for unknown extensions and undetectable content.
var defaultDialect = Dialect{Family: FamilyScript, Parser: parserBabel}

// DetectDialect resolves the dialect for a source text. A non-empty
// fileName wins: its extension is looked up in the fixed table, with
// unknown extensions mapping to the script dialect. Content-based
// detection runs only when no fileName hint exists at all.
func DetectDialect(fileName, source string) Dialect {
	if fileName != "" {
		ext := strings.ToLower(filepath.Ext(fileName))
		if d, ok := dialectByExtension[ext]; ok {
			return d
		}

		return defaultDialect
	}

	lang := enry.GetLanguage("", []byte(source))
	if d, ok := dialectByLanguage[lang]; ok {
		return d
	}

	return defaultDialect
}
