package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// LoadKDL reads `.xmlman.kdl` from dir if it exists, returning nil (not an
// error) when no project file is present — defaults then apply.
func LoadKDL(dir string) (*Config, error) {
	path := filepath.Join(dir, ".xmlman.kdl")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return parseKDL(string(content))
}

// parseKDL walks a `.xmlman.kdl` document, starting from Default() so any
// field the file omits keeps its spec default.
func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse .xmlman.kdl: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "input":
			if s, ok := firstStringArg(n); ok {
				cfg.InputRoot = s
			}
		case "output":
			if s, ok := firstStringArg(n); ok {
				cfg.OutputRoot = s
			}
		case "modes":
			if modes := collectStringArgs(n); len(modes) > 0 {
				cfg.Modes = modes
			}
		case "encoding":
			if s, ok := firstStringArg(n); ok {
				cfg.Encoding = s
			}
		case "line-ending":
			if s, ok := firstStringArg(n); ok {
				cfg.LineEnding = s
			}
		case "page-width":
			if v, ok := firstIntArg(n); ok {
				cfg.PageWidth = v
			}
		case "strict":
			if b, ok := firstBoolArg(n); ok {
				cfg.Strict = b
			}
		}
	}

	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		i, err := strconv.Atoi(v)
		return i, err == nil
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

// collectStringArgs gathers a node's string arguments, falling back to its
// children's names for the block form (`modes { text; html }`).
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 && len(n.Children) > 0 {
		for _, child := range n.Children {
			if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}
