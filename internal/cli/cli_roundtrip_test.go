package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustRun(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: beatline %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
	}
	return env
}

func dataMap(t *testing.T, env map[string]any) map[string]any {
	t.Helper()
	m, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object; got %#v", env["data"])
	}
	return m
}

func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("BEATLINE_CONFIG_DIR", t.TempDir())
	t.Setenv("BEATLINE_DIR", "")
	t.Setenv("BEATLINE_WORKSPACE", "")
	return t.TempDir()
}

func TestCLIDocumentNodeRoundTrip(t *testing.T) {
	dir := isolate(t)

	mustRun(t, "--dir", dir, "init")

	doc := dataMap(t, mustRun(t, "--dir", dir, "documents", "create", "--title", "Road Draft", "--use"))
	docID, _ := doc["id"].(string)
	if docID == "" {
		t.Fatalf("expected documents create to return an id; got %#v", doc)
	}

	root := dataMap(t, mustRun(t, "--dir", dir, "nodes", "add", "Part One"))
	rootID, _ := root["id"].(string)
	if rootID == "" {
		t.Fatalf("expected nodes add to return an id; got %#v", root)
	}
	mustRun(t, "--dir", dir, "nodes", "add", "The Road", "--parent", rootID)

	show := dataMap(t, mustRun(t, "--dir", dir, "nodes", "show"))
	rows, _ := show["rows"].([]any)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows; got %d: %#v", len(rows), rows)
	}
	first := rows[0].(map[string]any)
	second := rows[1].(map[string]any)
	if first["prefix"] != "1." || second["prefix"] != "a." {
		t.Fatalf("expected classic prefixes 1. and a.; got %v and %v", first["prefix"], second["prefix"])
	}
	if second["location"] != "1.a" {
		t.Fatalf("expected location 1.a; got %v", second["location"])
	}

	// Collapsing hides the child from the default view but not from --all.
	mustRun(t, "--dir", dir, "nodes", "collapse", rootID)
	show = dataMap(t, mustRun(t, "--dir", dir, "nodes", "show"))
	if rows, _ := show["rows"].([]any); len(rows) != 1 {
		t.Fatalf("expected collapsed child hidden; got %d rows", len(rows))
	}
	show = dataMap(t, mustRun(t, "--dir", dir, "nodes", "show", "--all"))
	if rows, _ := show["rows"].([]any); len(rows) != 2 {
		t.Fatalf("expected --all to include hidden rows; got %d rows", len(rows))
	}
}

func TestCLIImportScanExportFlow(t *testing.T) {
	dir := isolate(t)

	mustRun(t, "--dir", dir, "init")
	mustRun(t, "--dir", dir, "documents", "create", "--title", "Novel Outline", "--use")

	src := filepath.Join(t.TempDir(), "paste.txt")
	text := "1. Introduction\n2. Body\n   a. Dean arrives.\n   b. Sal leaves.\n3. Conclusion\n"
	if err := os.WriteFile(src, []byte(text), 0o644); err != nil {
		t.Fatalf("write import file: %v", err)
	}

	res := dataMap(t, mustRun(t, "--dir", dir, "import", src))
	if got, _ := res["imported"].(float64); got != 5 {
		t.Fatalf("expected 5 imported items; got %v", res["imported"])
	}

	show := dataMap(t, mustRun(t, "--dir", dir, "nodes", "show"))
	rows, _ := show["rows"].([]any)
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows after import; got %d", len(rows))
	}
	sub := rows[2].(map[string]any)
	depth, _ := sub["depth"].(float64)
	if sub["label"] != "Dean arrives." || depth != 1 {
		t.Fatalf("expected nested sub-item; got %#v", sub)
	}

	mustRun(t, "--dir", dir, "entities", "add", "--name", "Dean Moriarty", "--kind", "person", "--alias", "Dean")
	scanRes := dataMap(t, mustRun(t, "--dir", dir, "scan"))
	usages, _ := scanRes["usages"].([]any)
	if len(usages) != 1 {
		t.Fatalf("expected one entity usage; got %#v", usages)
	}
	usage := usages[0].(map[string]any)
	if usage["location"] != "2.a" {
		t.Fatalf("expected usage at 2.a; got %v", usage["location"])
	}

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "export", "--stdout"})
	if err != nil {
		t.Fatalf("export: %v\nstderr:\n%s", err, string(stderr))
	}
	md := string(stdout)
	if !strings.Contains(md, "# Novel Outline") || !strings.Contains(md, "1. Introduction") {
		t.Fatalf("unexpected markdown export:\n%s", md)
	}
}

func TestCLIImportDryRunDoesNotWrite(t *testing.T) {
	dir := isolate(t)

	mustRun(t, "--dir", dir, "init")
	mustRun(t, "--dir", dir, "documents", "create", "--title", "Scratch", "--use")

	src := filepath.Join(t.TempDir(), "paste.txt")
	if err := os.WriteFile(src, []byte("1. One\n2. Two\n"), 0o644); err != nil {
		t.Fatalf("write import file: %v", err)
	}

	res := dataMap(t, mustRun(t, "--dir", dir, "import", src, "--dry-run"))
	if res["hasOutlinePatterns"] != true {
		t.Fatalf("expected outline patterns detected; got %#v", res)
	}
	if items, _ := res["items"].([]any); len(items) != 2 {
		t.Fatalf("expected 2 analyzed items; got %#v", res["items"])
	}

	show := dataMap(t, mustRun(t, "--dir", dir, "nodes", "show"))
	if rows, _ := show["rows"].([]any); len(rows) != 0 {
		t.Fatalf("expected dry run to leave the outline empty; got %d rows", len(rows))
	}
}

func TestCLIUnknownDocumentFails(t *testing.T) {
	dir := isolate(t)

	mustRun(t, "--dir", dir, "init")
	_, stderr, err := runCLI(t, []string{"--dir", dir, "documents", "show", "doc-missing"})
	if err == nil {
		t.Fatal("expected error for unknown document")
	}
	if !strings.Contains(string(stderr), "not found") {
		t.Fatalf("expected not-found message; got %q", string(stderr))
	}
}
