package extract

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Extract returns every external package reference in contents. The
// structural pass runs first; when both the primary and alternate
// grammars report syntax errors the line scanner takes over and a
// Warning is returned alongside the records. A nil Warning means the
// structural pass succeeded.
func Extract(contents []byte, filePath string) ([]ImportRecord, *Warning) {
	primary, alternate := grammarsFor(filePath)

	for _, lang := range []string{primary, alternate} {
		records, ok := structuralPass(contents, filePath, lang)
		if ok {
			return records, nil
		}
	}

	records := fallbackScan(contents, filePath)
	return records, &Warning{
		File: filePath,
		Message: fmt.Sprintf("syntax errors under %s and %s grammars, fell back to line scanner",
			primary, alternate),
	}
}

// structuralPass parses with the given grammar and walks the tree.
// ok is false when the grammar could not cleanly parse the file.
func structuralPass(contents []byte, filePath, lang string) ([]ImportRecord, bool) {
	lp, err := newLanguageParser(lang)
	if err != nil {
		return nil, false
	}
	defer lp.close()

	tree, err := lp.parse(contents)
	if err != nil {
		return nil, false
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, false
	}
	return scanTree(root, contents, filePath), true
}

// scanTree visits every node and emits a record for each of the four
// recognized reference shapes: static imports, require(...), dynamic
// import(...), and require.resolve(...). Recursion follows child
// edges only, so parent back-references cannot loop.
func scanTree(root *sitter.Node, code []byte, filePath string) []ImportRecord {
	records := []ImportRecord{}

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}

		switch n.Kind() {
		case "import_statement":
			if rec, ok := importStatementRecord(n, code, filePath); ok {
				records = append(records, rec)
			}
		case "call_expression":
			if rec, ok := callRecord(n, code, filePath); ok {
				records = append(records, rec)
			}
		}

		for i := uint(0); i < n.ChildCount(); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)

	return records
}

// importStatementRecord handles static import declarations.
func importStatementRecord(n *sitter.Node, code []byte, filePath string) (ImportRecord, bool) {
	source := n.ChildByFieldName("source")
	if source == nil || source.Kind() != "string" {
		return ImportRecord{}, false
	}

	specifier := strings.Trim(getNodeText(source, code), "\"'`")
	if !IsExternal(specifier) {
		return ImportRecord{}, false
	}

	return ImportRecord{
		Package:  PackageName(specifier),
		TypeOnly: importIsTypeOnly(n),
		File:     filePath,
		Line:     int(n.StartPosition().Row) + 1,
		Column:   int(n.StartPosition().Column),
	}, true
}

// importIsTypeOnly reports whether a static import carries no runtime
// footprint: either the declaration itself is `import type`, or every
// named specifier is individually type-marked. A declaration mixing
// type and value specifiers counts as runtime.
func importIsTypeOnly(n *sitter.Node) bool {
	var clause *sitter.Node
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		switch c.Kind() {
		case "type":
			// Declaration-level `import type`: the keyword token sits
			// directly under the statement, never nested.
			return true
		case "import_clause":
			clause = c
		}
	}
	if clause == nil {
		// Side-effect import (`import "polyfill"`) always executes.
		return false
	}

	sawSpecifier := false
	for i := uint(0); i < clause.ChildCount(); i++ {
		c := clause.Child(i)
		switch c.Kind() {
		case "identifier", "namespace_import":
			// Default and namespace bindings cannot be type-marked
			// individually.
			return false
		case "named_imports":
			for j := uint(0); j < c.ChildCount(); j++ {
				spec := c.Child(j)
				if spec.Kind() != "import_specifier" {
					continue
				}
				sawSpecifier = true
				if !specifierIsTypeMarked(spec) {
					return false
				}
			}
		}
	}
	return sawSpecifier
}

// specifierIsTypeMarked reports whether one named specifier carries an
// inline `type` keyword. `{ type as alias }` binds an identifier named
// type, which parses as the name field, not a keyword token.
func specifierIsTypeMarked(spec *sitter.Node) bool {
	for i := uint(0); i < spec.ChildCount(); i++ {
		if spec.Child(i).Kind() == "type" {
			return true
		}
	}
	return false
}

// callRecord handles require(...), dynamic import(...), and
// require.resolve(...) with a string-literal argument. Computed
// specifiers are out of scope and ignored.
func callRecord(n *sitter.Node, code []byte, filePath string) (ImportRecord, bool) {
	fn := n.ChildByFieldName("function")
	args := n.ChildByFieldName("arguments")
	if fn == nil || args == nil {
		return ImportRecord{}, false
	}

	matched := false
	switch fn.Kind() {
	case "identifier":
		matched = getNodeText(fn, code) == "require"
	case "import":
		matched = true
	case "member_expression":
		obj := fn.ChildByFieldName("object")
		prop := fn.ChildByFieldName("property")
		matched = obj != nil && prop != nil &&
			obj.Kind() == "identifier" &&
			getNodeText(obj, code) == "require" &&
			getNodeText(prop, code) == "resolve"
	}
	if !matched {
		return ImportRecord{}, false
	}

	var lit *sitter.Node
	if args.NamedChildCount() > 0 {
		if c := args.NamedChild(0); c != nil && c.Kind() == "string" {
			lit = c
		}
	}
	if lit == nil {
		return ImportRecord{}, false
	}

	specifier := strings.Trim(getNodeText(lit, code), "\"'`")
	if !IsExternal(specifier) {
		return ImportRecord{}, false
	}

	return ImportRecord{
		Package: PackageName(specifier),
		File:    filePath,
		Line:    int(n.StartPosition().Row) + 1,
		Column:  int(n.StartPosition().Column),
	}, true
}
