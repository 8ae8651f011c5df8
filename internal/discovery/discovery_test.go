package discovery

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/klauern/skillref/internal/validation"
)

func writeSkill(t *testing.T, root string, relDir string) string {
	t.Helper()
	dir := filepath.Join(root, relDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create directory %q: %v", dir, err)
	}
	name := filepath.Base(relDir)
	content := "---\nname: " + name + "\ndescription: test skill " + name + "\n---\nBody.\n"
	if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write SKILL.md: %v", err)
	}
	return dir
}

func TestDiscoverNonRecursive(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "skill-a")
	writeSkill(t, root, "skill-b")
	writeSkill(t, root, "category/skill-c") // not an immediate child
	if err := os.MkdirAll(filepath.Join(root, "not-a-skill"), 0o755); err != nil {
		t.Fatal(err)
	}

	got := slices.Collect(Discover(root, false))
	if len(got) != 2 {
		t.Fatalf("Discover() yielded %d dirs, want 2: %v", len(got), got)
	}
	for _, dir := range got {
		if filepath.Dir(dir) != root {
			t.Errorf("non-recursive discovery yielded nested dir %q", dir)
		}
	}
}

func TestDiscoverRecursive(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "skill-a")
	writeSkill(t, root, "category/nested/skill-b")

	got := slices.Collect(Discover(root, true))
	if len(got) != 2 {
		t.Fatalf("Discover() yielded %d dirs, want 2: %v", len(got), got)
	}
}

func TestDiscoverSkipsNestedDecoys(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "skill-a")
	writeSkill(t, root, "skill-b")
	skillC := writeSkill(t, root, "skill-c")
	// A decoy SKILL.md nested inside a skill's own auxiliary files
	writeSkill(t, root, filepath.Join("skill-c", "references", "decoy"))

	got := slices.Collect(Discover(root, true))
	if len(got) != 3 {
		t.Fatalf("Discover() yielded %d dirs, want 3: %v", len(got), got)
	}

	// No yielded path may be nested inside another yielded path
	for _, outer := range got {
		for _, inner := range got {
			if outer != inner && strings.HasPrefix(inner, outer+string(filepath.Separator)) {
				t.Errorf("yielded %q is nested inside %q", inner, outer)
			}
		}
	}

	if !slices.Contains(got, skillC) {
		t.Errorf("skill-c missing from results: %v", got)
	}
}

func TestDiscoverRootIsSkill(t *testing.T) {
	root := t.TempDir()
	skill := writeSkill(t, root, "the-skill")
	// Anything below a skill directory is invisible to discovery
	writeSkill(t, root, filepath.Join("the-skill", "inner"))

	got := slices.Collect(Discover(skill, true))
	if len(got) != 1 || got[0] != skill {
		t.Errorf("Discover() on a skill root = %v, want [%s]", got, skill)
	}
}

func TestDiscoverSymlinkCycle(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "skill-a")
	loopDir := filepath.Join(root, "loop")
	if err := os.MkdirAll(loopDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(root, filepath.Join(loopDir, "back")); err != nil {
		t.Skipf("cannot create symlinks on this system: %v", err)
	}

	// Must terminate despite the cycle
	if n := Count(root, true); n != 1 {
		t.Errorf("Count() = %d, want 1", n)
	}
}

func TestDiscoverStopsWhenConsumerStops(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "skill-a")
	writeSkill(t, root, "skill-b")
	writeSkill(t, root, "skill-c")

	var got []string
	for dir := range Discover(root, true) {
		got = append(got, dir)
		break
	}
	if len(got) != 1 {
		t.Errorf("early break yielded %d dirs, want 1", len(got))
	}
}

func TestDiscoverMissingRoot(t *testing.T) {
	got := slices.Collect(Discover(filepath.Join(t.TempDir(), "absent"), false))
	if len(got) != 0 {
		t.Errorf("Discover() on missing root yielded %v, want nothing", got)
	}
}

func TestCount(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "skill-a")
	writeSkill(t, root, "skill-b")
	writeSkill(t, root, "deep/skill-c")

	tests := map[string]struct {
		recursive bool
		want      int
	}{
		"non-recursive": {recursive: false, want: 2},
		"recursive":     {recursive: true, want: 3},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Count(root, tt.recursive); got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInspect(t *testing.T) {
	root := t.TempDir()
	valid := writeSkill(t, root, "good-skill")

	info, err := Inspect(valid, validation.DefaultOptions())
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if !info.Valid {
		t.Errorf("Valid = false, violations: %v", info.Violations)
	}
	if info.Properties == nil || info.Properties.Name != "good-skill" {
		t.Errorf("Properties = %+v, want name good-skill", info.Properties)
	}
	if info.Location.SkillFile != filepath.Join(valid, "SKILL.md") {
		t.Errorf("SkillFile = %q", info.Location.SkillFile)
	}
}

func TestInspectBrokenSkill(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "broken")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte("no header\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := Inspect(dir, validation.DefaultOptions())
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if info.Valid {
		t.Error("Valid = true for broken skill")
	}
	if info.Properties != nil {
		t.Errorf("Properties = %+v, want nil for unparseable skill", info.Properties)
	}
	if len(info.Violations) == 0 {
		t.Error("expected violations for broken skill")
	}
}

func TestCollectPreservesOrder(t *testing.T) {
	root := t.TempDir()
	writeSkill(t, root, "alpha")
	writeSkill(t, root, "beta")
	writeSkill(t, root, "gamma")

	infos, err := Collect(root, false, validation.DefaultOptions())
	if err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if len(infos) != 3 {
		t.Fatalf("Collect() returned %d skills, want 3", len(infos))
	}

	dirs := slices.Collect(Discover(root, false))
	for i, info := range infos {
		if info.Location.Dir != dirs[i] {
			t.Errorf("infos[%d].Dir = %q, discovery order gives %q", i, info.Location.Dir, dirs[i])
		}
	}
}
