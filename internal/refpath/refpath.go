// Package refpath builds pytest-style reference paths from document symbol
// trees. All functions are pure; the LSP client and clipboard live elsewhere.
package refpath

import (
	"path"
	"path/filepath"
	"strings"

	"go.lsp.dev/protocol"
)

// Separator joins the module path and symbol name segments of a reference.
const Separator = "::"

// initializerStem is the extension-less name of a package initializer file.
const initializerStem = "__init__"

// HierarchyPath returns the chain of symbols that enclose pos, outermost
// first. At each level the first symbol whose range contains pos wins, and
// only its children are searched for a more specific match. The result is
// empty when no top-level symbol contains pos.
func HierarchyPath(symbols []protocol.DocumentSymbol, pos protocol.Position) []protocol.DocumentSymbol {
	var chain []protocol.DocumentSymbol
	level := symbols
	for {
		found := false
		for _, sym := range level {
			if RangeContains(sym.Range, pos) {
				chain = append(chain, sym)
				level = sym.Children
				found = true
				break
			}
		}
		if !found {
			return chain
		}
	}
}

// NamePath returns the path from a root symbol to the first symbol whose
// name equals name, inclusive. Matching is exact and case-sensitive, and
// the tree is visited in depth-first pre-order. It returns nil when no
// symbol matches.
func NamePath(symbols []protocol.DocumentSymbol, name string) []protocol.DocumentSymbol {
	for _, sym := range symbols {
		if sym.Name == name {
			return []protocol.DocumentSymbol{sym}
		}
		if rest := NamePath(sym.Children, name); rest != nil {
			return append([]protocol.DocumentSymbol{sym}, rest...)
		}
	}
	return nil
}

// Names extracts the symbol names from a symbol path.
func Names(symbolPath []protocol.DocumentSymbol) []string {
	if len(symbolPath) == 0 {
		return nil
	}
	names := make([]string, len(symbolPath))
	for i, sym := range symbolPath {
		names[i] = sym.Name
	}
	return names
}

// RangeContains reports whether rng contains pos, inclusive of both ends.
func RangeContains(rng protocol.Range, pos protocol.Position) bool {
	if pos.Line < rng.Start.Line || pos.Line > rng.End.Line {
		return false
	}
	if pos.Line == rng.Start.Line && pos.Character < rng.Start.Character {
		return false
	}
	if pos.Line == rng.End.Line && pos.Character > rng.End.Character {
		return false
	}
	return true
}

// ModulePath derives the package-style path for file. Files under
// workspaceRoot yield their slash-separated relative path without the
// extension, with a trailing package initializer segment elided so the path
// names the package directory. Files outside the root fall back to the bare
// file name without its extension.
func ModulePath(file, workspaceRoot string) string {
	stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	if workspaceRoot == "" {
		return stem
	}
	rel, err := filepath.Rel(workspaceRoot, file)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return stem
	}
	rel = filepath.ToSlash(rel)
	rel = strings.TrimSuffix(rel, path.Ext(rel))
	if path.Base(rel) == initializerStem {
		dir := path.Dir(rel)
		if dir == "." {
			return initializerStem
		}
		return dir
	}
	return rel
}

// Format joins the module path and symbol names into a reference string.
// An empty module path is omitted.
func Format(modulePath string, names []string) string {
	segments := make([]string, 0, len(names)+1)
	if modulePath != "" {
		segments = append(segments, modulePath)
	}
	segments = append(segments, names...)
	return strings.Join(segments, Separator)
}

// IsPythonFile reports whether p names a Python source file.
func IsPythonFile(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".py", ".pyi":
		return true
	}
	return false
}

// WordAt returns the identifier under pos in text, or the empty string when
// the cursor does not touch an identifier character.
func WordAt(text string, pos protocol.Position) string {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return ""
	}
	line := []rune(strings.TrimSuffix(lines[pos.Line], "\r"))
	col := int(pos.Character)
	if col > len(line) {
		col = len(line)
	}
	start := col
	for start > 0 && isWordRune(line[start-1]) {
		start--
	}
	end := col
	for end < len(line) && isWordRune(line[end]) {
		end++
	}
	return string(line[start:end])
}

func isWordRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
