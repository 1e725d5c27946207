package extract

import (
	"fmt"
	"path/filepath"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// languageParser wraps a tree-sitter parser with a fixed grammar.
// Always call close() to release CGO-held memory.
type languageParser struct {
	parser *sitter.Parser
}

// newLanguageParser creates a parser for one of the supported
// grammars: javascript, typescript, tsx.
func newLanguageParser(lang string) (*languageParser, error) {
	parser := sitter.NewParser()
	if parser == nil {
		return nil, fmt.Errorf("failed to create tree-sitter parser")
	}

	var language *sitter.Language
	switch lang {
	case "javascript":
		language = sitter.NewLanguage(tree_sitter_javascript.Language())
	case "typescript":
		language = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	case "tsx":
		language = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
	default:
		parser.Close()
		return nil, fmt.Errorf("unsupported grammar: %s", lang)
	}

	if err := parser.SetLanguage(language); err != nil {
		parser.Close()
		return nil, fmt.Errorf("failed to set grammar %s: %w", lang, err)
	}
	return &languageParser{parser: parser}, nil
}

func (lp *languageParser) parse(code []byte) (*sitter.Tree, error) {
	tree := lp.parser.Parse(code, nil)
	if tree == nil {
		return nil, fmt.Errorf("parse produced no tree")
	}
	return tree, nil
}

func (lp *languageParser) close() {
	if lp.parser != nil {
		lp.parser.Close()
	}
}

// grammarsFor picks the primary grammar from the file extension plus
// an alternate used when the primary parse reports syntax errors. TSX
// is the alternate for plain grammars since it accepts the widest
// syntax surface.
func grammarsFor(filePath string) (primary, alternate string) {
	switch filepath.Ext(filePath) {
	case ".ts", ".mts", ".cts":
		return "typescript", "tsx"
	case ".tsx":
		return "tsx", "typescript"
	case ".js", ".mjs", ".cjs", ".jsx":
		return "javascript", "tsx"
	default:
		return "typescript", "tsx"
	}
}

// getNodeText extracts source text for a node using byte offsets.
func getNodeText(node *sitter.Node, code []byte) string {
	if node == nil {
		return ""
	}
	start := node.StartByte()
	end := node.EndByte()
	if int(end) > len(code) {
		end = uint(len(code))
	}
	return string(code[start:end])
}
