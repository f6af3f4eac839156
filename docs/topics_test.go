package docs

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// readmeTopics returns the topics listed in readme.md as "* name: description".
func readmeTopics(t *testing.T) []string {
	t.Helper()
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topics []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if m := topicRegex.FindStringSubmatch(scanner.Text()); len(m) > 1 {
			topics = append(topics, strings.TrimSpace(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}
	return topics
}

func TestTopics(t *testing.T) {
	listed := readmeTopics(t)
	for _, topic := range listed {
		if _, err := GetTopic(topic); err != nil {
			t.Errorf("failed to get topic %q: %v", topic, err)
		}
	}

	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		topic := strings.TrimSuffix(file, ".md")
		if topic != index && !slices.Contains(listed, topic) {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error = %v", err)
	}
	if len(all) != len(listed) {
		t.Errorf("GetAllTopics() = %v, want the %d topics of readme.md", all, len(listed))
	}
	if _, err := GetTopic("nope"); err == nil {
		t.Error("GetTopic() of a missing topic succeeded")
	}
}

func TestGetTopic_Star(t *testing.T) {
	content, err := GetTopic("*")
	if err != nil {
		t.Fatalf("GetTopic(*) error = %v", err)
	}
	for _, title := range []string{"# Accounts", "# Transfers", "# Storage"} {
		if !strings.Contains(content, title) {
			t.Errorf("GetTopic(*) does not contain %q", title)
		}
	}
}

// TestTopicStructure checks that every topic has a single title, and that
// shell examples only run fin.
func TestTopicStructure(t *testing.T) {
	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range append(all, index) {
		t.Run(topic, func(t *testing.T) {
			content, err := GetTopic(topic)
			if err != nil {
				t.Fatal(err)
			}
			src := []byte(content)
			root := goldmark.DefaultParser().Parse(text.NewReader(src))

			titles := 0
			ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				if !entering {
					return ast.WalkContinue, nil
				}
				switch n := n.(type) {
				case *ast.Heading:
					if n.Level == 1 {
						titles++
					}
				case *ast.FencedCodeBlock:
					if string(n.Language(src)) != "bash" {
						t.Errorf("code block with language %q, want bash", n.Language(src))
						break
					}
					for i := 0; i < n.Lines().Len(); i++ {
						line := n.Lines().At(i)
						cmd := strings.TrimSpace(string(line.Value(src)))
						if cmd != "" && !strings.HasPrefix(cmd, "fin ") {
							t.Errorf("example %q does not run fin", cmd)
						}
					}
				}
				return ast.WalkContinue, nil
			})
			if titles != 1 {
				t.Errorf("got %d titles, want 1", titles)
			}
		})
	}
}
