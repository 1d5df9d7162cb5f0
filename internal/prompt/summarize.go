package prompt

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// BuildAttachment renders file content as a numbered-line attachment block.
// With summarize set, only the structurally interesting lines are kept, with
// a per-filetype strategy. Content is capped at MaxAttachmentBytes first.
func BuildAttachment(repoRoot, relPath, content string, summarize bool) string {
	base := filepath.Base(relPath)
	abs := filepath.Join(repoRoot, relPath)

	content = CapBytes(content)
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	total := len(lines)

	var kept map[int]string
	if summarize {
		kept = summarizeByType(relPath, lines)
	} else {
		kept = make(map[int]string, total)
		for i, s := range lines {
			kept[i+1] = strings.TrimRight(s, "\r")
		}
	}

	width := len(fmt.Sprintf("%d", total))
	if width < 2 {
		width = 2
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<attachment id=\"%s\" isSummarized=\"%t\">\n", base, summarize))
	b.WriteString(filepathCommentLine(relPath, abs))

	keys := make([]int, 0, len(kept))
	for k := range kept {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	for _, ln := range keys {
		b.WriteString(fmt.Sprintf("%*d: %s\n", width, ln, kept[ln]))
	}
	b.WriteString("</attachment>\n")
	return b.String()
}

func summarizeByType(relPath string, lines []string) map[int]string {
	ext := strings.ToLower(filepath.Ext(relPath))
	switch ext {
	case ".md", ".txt", ".json", ".yml", ".yaml", ".toml":
		return summarizeHeadPlusLast(lines, 25)

	case ".go":
		return summarizeGo(lines)

	default:
		return summarizeHeadTail(lines, 80, 5)
	}
}

// Docs and config files: the head carries the shape, keep it plus the last
// line so the numbering still shows the file length.
func summarizeHeadPlusLast(lines []string, headN int) map[int]string {
	kept := map[int]string{}
	n := len(lines)

	h := min(headN, n)
	for i := 1; i <= h; i++ {
		kept[i] = strings.TrimRight(lines[i-1], "\r")
	}
	if n >= 1 {
		kept[n] = strings.TrimRight(lines[n-1], "\r")
	}
	return kept
}

func summarizeHeadTail(lines []string, headN, tailN int) map[int]string {
	kept := map[int]string{}
	n := len(lines)

	h := min(headN, n)
	for i := 1; i <= h; i++ {
		kept[i] = strings.TrimRight(lines[i-1], "\r")
	}

	start := max(1, n-tailN+1)
	for i := start; i <= n; i++ {
		kept[i] = strings.TrimRight(lines[i-1], "\r")
	}
	return kept
}

// Go files: keep package, import, type, const and var declarations plus
// comments, and collapse every func body to its signature with "{…}".
func summarizeGo(lines []string) map[int]string {
	kept := map[int]string{}
	n := len(lines)

	inImport := false
	inGroup := false
	groupDepth := 0

	inFunc := false
	funcLine := 0
	funcDepth := 0
	sawBody := false

	for i := 0; i < n; i++ {
		ln := i + 1
		line := strings.TrimRight(lines[i], "\r")
		trim := strings.TrimSpace(line)

		switch {
		case inFunc:
			if !sawBody && strings.Contains(line, "{") {
				kept[funcLine] = strings.TrimRight(kept[funcLine], " \t") + " {…}"
				sawBody = true
			}
			funcDepth += strings.Count(line, "{") - strings.Count(line, "}")
			if sawBody && funcDepth <= 0 {
				inFunc = false
			}

		case inImport:
			kept[ln] = line
			if trim == ")" {
				inImport = false
			}

		case inGroup:
			kept[ln] = line
			groupDepth += strings.Count(line, "(") - strings.Count(line, ")")
			if groupDepth <= 0 {
				inGroup = false
			}

		case strings.HasPrefix(trim, "import ("):
			inImport = true
			kept[ln] = line

		case strings.HasPrefix(trim, "type (") || strings.HasPrefix(trim, "const (") || strings.HasPrefix(trim, "var ("):
			inGroup = true
			groupDepth = 1
			kept[ln] = line

		case strings.HasPrefix(trim, "func "):
			inFunc = true
			funcLine = ln
			sawBody = false
			funcDepth = 0
			if idx := strings.Index(line, "{"); idx >= 0 {
				kept[ln] = strings.TrimRight(line[:idx], " \t") + " {…}"
				sawBody = true
				funcDepth = strings.Count(line, "{") - strings.Count(line, "}")
				if funcDepth <= 0 {
					inFunc = false
				}
			} else {
				// Multiline signature, collapse once the opening brace shows up.
				kept[ln] = line
			}

		default:
			if trim == "" ||
				strings.HasPrefix(trim, "package ") ||
				strings.HasPrefix(trim, "type ") ||
				strings.HasPrefix(trim, "const ") ||
				strings.HasPrefix(trim, "var ") ||
				strings.HasPrefix(trim, "//") {
				kept[ln] = line
			}
		}
	}

	// Keep the last line so the numbering reveals the true length.
	if n >= 1 {
		kept[n] = strings.TrimRight(lines[n-1], "\r")
	}

	return kept
}

func filepathCommentLine(rel, abs string) string {
	ext := strings.ToLower(filepath.Ext(rel))
	switch ext {
	case ".md", ".html", ".xml", ".yaml", ".yml", ".json":
		return fmt.Sprintf("<!-- filepath: %s -->\n", abs)
	case ".py", ".sh":
		return fmt.Sprintf("# filepath: %s\n", abs)
	default:
		return fmt.Sprintf("// filepath: %s\n", abs)
	}
}
