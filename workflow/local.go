package workflow

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/accordhq/accord/llm"
)

// Local default collaborators. They keep dev-cycle usable standalone: the
// analyzer walks the working tree, the proposer asks an LLM (with canned
// proposals when none is configured or the response is unusable), and the
// applier writes files to disk.

// TreeAnalyzer summarizes the repository by walking the file tree rooted at
// Root and counting source files per extension.
type TreeAnalyzer struct {
	Root string
}

// Analyze walks the tree and reports file counts and the focus areas it was
// given. Hidden directories and common vendor/build dirs are skipped.
func (a *TreeAnalyzer) Analyze(_ context.Context, focusAreas []string) (map[string]interface{}, error) {
	root := a.Root
	if root == "" {
		root = "."
	}

	counts := make(map[string]int)
	total := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are not worth failing the cycle
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor" || name == "dist") {
				return filepath.SkipDir
			}
			return nil
		}
		if ext := filepath.Ext(name); ext != "" {
			counts[ext]++
		}
		total++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	exts := make([]string, 0, len(counts))
	for ext := range counts {
		exts = append(exts, ext)
	}
	sort.Slice(exts, func(i, j int) bool { return counts[exts[i]] > counts[exts[j]] })
	if len(exts) > 5 {
		exts = exts[:5]
	}
	top := make([]string, 0, len(exts))
	for _, ext := range exts {
		top = append(top, fmt.Sprintf("%s (%d)", ext, counts[ext]))
	}

	analysis := map[string]interface{}{
		"root":           root,
		"total_files":    total,
		"top_extensions": strings.Join(top, ", "),
	}
	if len(focusAreas) > 0 {
		analysis["focus_areas"] = strings.Join(focusAreas, ", ")
	}
	return analysis, nil
}

const proposalSystemPrompt = `You are a development planner. Given a short repository summary,
propose up to 5 small, self-contained improvement tasks.

Respond with ONLY a single JSON object:
{"proposals": [{"title": "...", "description": "...", "priority": "low|medium|high|critical", "files_affected": ["..."]}]}`

type proposalPayload struct {
	Proposals []TaskProposal `json:"proposals"`
}

// LLMProposer generates candidate tasks via a completion endpoint. With no
// completer configured, or when the response carries no usable JSON, it
// returns a fixed set of housekeeping proposals instead of failing.
type LLMProposer struct {
	Completer llm.Completer
}

// Propose turns the analysis payload into candidate task descriptors.
func (p *LLMProposer) Propose(ctx context.Context, analysis map[string]interface{}) ([]TaskProposal, error) {
	if p.Completer == nil {
		return cannedProposals(), nil
	}

	var b strings.Builder
	b.WriteString("Repository summary:\n")
	keys := make([]string, 0, len(analysis))
	for k := range analysis {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %v\n", k, analysis[k])
	}
	b.WriteString("\nPropose improvement tasks as the JSON object only.")

	response, err := p.Completer.Complete(ctx, llm.Request{System: proposalSystemPrompt, Prompt: b.String()})
	if err != nil {
		return cannedProposals(), nil
	}
	payload, ok := llm.ExtractJSON[proposalPayload](response)
	if !ok {
		return cannedProposals(), nil
	}
	return payload.Proposals, nil
}

func cannedProposals() []TaskProposal {
	return []TaskProposal{
		{
			Title:       "Review error handling in recently changed files",
			Description: "Walk the most recently modified source files and check that errors are wrapped with context before propagating.",
			Priority:    "medium",
		},
		{
			Title:       "Analysis of test coverage gaps",
			Description: "Identify packages without tests and record the three highest-value gaps as follow-up tasks.",
			Priority:    "low",
		},
	}
}

// FileApplier writes generated file contents under Root. The commit message
// and actor label are recorded in verbose output only; version control
// integration stays outside the core.
type FileApplier struct {
	Root    string
	Verbose bool
}

// Apply writes each file, creating parent directories as needed. The first
// write failure aborts this task's application and is surfaced to the caller.
func (a *FileApplier) Apply(_ context.Context, files map[string]string, commitMessage, actorLabel string) error {
	root := a.Root
	if root == "" {
		root = "."
	}

	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		// Generated paths are untrusted; refuse anything that escapes Root.
		if !filepath.IsLocal(path) {
			return fmt.Errorf("refusing to write outside the working tree: %s", path)
		}
		full := filepath.Join(root, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", path, err)
		}
		if err := os.WriteFile(full, []byte(files[path]), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if a.Verbose {
		fmt.Fprintf(os.Stderr, "[apply] %s wrote %d file(s): %s\n", actorLabel, len(paths), commitMessage)
	}
	return nil
}
