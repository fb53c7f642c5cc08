package features

import (
	"bytes"
	"strings"
	"testing"
)

const testFeaturesCSV = "--no-block,disable block decomposition\n" +
	"--no-learn,disable clause learning\n" +
	"--no-reduce,disable clause database reduction\n" +
	"--no-restart,disable restarts\n" +
	"--no-stable,disable stable phase\n"

func load(t *testing.T, features, implied, clashing string, opts LoadOptions) (*Set, Diagnostics) {
	t.Helper()
	s, diags, err := Load(
		strings.NewReader(features),
		strings.NewReader(implied),
		strings.NewReader(clashing),
		opts,
	)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s, diags
}

func TestOptionToNameAndDefine(t *testing.T) {
	name, err := optionToName("--no-block")
	if err != nil || name != "block" {
		t.Fatalf("optionToName(--no-block) = %q, %v", name, err)
	}
	define, err := optionToDefine("--no-no-sort")
	if err != nil || define != "NNOSORT" {
		t.Fatalf("optionToDefine(--no-no-sort) = %q, %v", define, err)
	}
	if _, err := optionToName("--block"); err == nil {
		t.Fatalf("expected error for option missing '--no-' prefix")
	}
}

func TestLoadBasic(t *testing.T) {
	s, diags := load(t, testFeaturesCSV, "", "", LoadOptions{})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(s.Features) != 5 {
		t.Fatalf("len(Features) = %d, want 5", len(s.Features))
	}
	if s.Features[0].Name != "block" || s.Features[0].Define != "NBLOCK" {
		t.Fatalf("unexpected feature[0]: %+v", s.Features[0])
	}
}

func TestLoadImpliedAndTransitiveClosure(t *testing.T) {
	implied := "--no-learn,--no-reduce\n--no-reduce,--no-restart\n"
	s, _ := load(t, testFeaturesCSV, implied, "", LoadOptions{})
	learn := s.indexOf("--no-learn")
	reduce := s.indexOf("--no-reduce")
	restart := s.indexOf("--no-restart")

	if !s.TransitivelyImplied[learn][reduce] {
		t.Fatalf("expected learn to directly imply reduce")
	}
	if !s.TransitivelyImplied[learn][restart] {
		t.Fatalf("expected learn to transitively imply restart through reduce")
	}
	if s.TransitivelyImplied[restart][learn] {
		t.Fatalf("implication must not be symmetric")
	}
}

func TestLoadRejectsDuplicatePair(t *testing.T) {
	implied := "--no-learn,--no-reduce\n--no-learn,--no-reduce\n"
	_, _, err := Load(strings.NewReader(testFeaturesCSV), strings.NewReader(implied), strings.NewReader(""), LoadOptions{})
	if err == nil {
		t.Fatalf("expected an error for a duplicated pair")
	}
}

func TestLoadRejectsClashingAlsoImplied(t *testing.T) {
	implied := "--no-learn,--no-reduce\n"
	clashing := "--no-learn,--no-reduce\n"
	_, _, err := Load(strings.NewReader(testFeaturesCSV), strings.NewReader(implied), strings.NewReader(clashing), LoadOptions{})
	if err == nil {
		t.Fatalf("expected an error: a pair cannot be both implied and clashing")
	}
}

func TestLoadUnsortedFeatureIsWarningUnlessPedantic(t *testing.T) {
	unsorted := "--no-restart,disable restarts\n--no-block,disable block decomposition\n"
	_, diags := load(t, unsorted, "", "", LoadOptions{})
	if len(diags) == 0 {
		t.Fatalf("expected an unsorted-feature warning")
	}

	_, _, err := Load(strings.NewReader(unsorted), strings.NewReader(""), strings.NewReader(""), LoadOptions{Pedantic: true})
	if err == nil {
		t.Fatalf("expected pedantic mode to turn the warning into an error")
	}
}

func TestRootsLeafsSingletons(t *testing.T) {
	implied := "--no-learn,--no-reduce\n"
	s, _ := load(t, testFeaturesCSV, implied, "", LoadOptions{})
	learn := s.indexOf("--no-learn")
	reduce := s.indexOf("--no-reduce")
	restart := s.indexOf("--no-restart")

	roots := s.Roots()
	if len(roots) != 1 || roots[0] != learn {
		t.Fatalf("Roots() = %v, want [%d]", roots, learn)
	}
	leafs := s.Leafs()
	if len(leafs) != 1 || leafs[0] != reduce {
		t.Fatalf("Leafs() = %v, want [%d]", leafs, reduce)
	}
	singles := s.Singletons()
	found := false
	for _, i := range singles {
		if i == restart {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected restart among singletons, got %v", singles)
	}
}

func TestInvalidPairsIncludesClashingAndImplied(t *testing.T) {
	implied := "--no-learn,--no-reduce\n"
	clashing := "--no-restart,--no-stable\n"
	s, _ := load(t, testFeaturesCSV, implied, clashing, LoadOptions{})

	pairs := s.InvalidPairs()
	names := map[string]bool{}
	for _, p := range pairs {
		names[s.Features[p[0]].Name+","+s.Features[p[1]].Name] = true
	}
	if !names["learn,reduce"] {
		t.Fatalf("expected implied pair learn,reduce among invalid pairs: %v", pairs)
	}
	if !names["restart,stable"] {
		t.Fatalf("expected clashing pair restart,stable among invalid pairs: %v", pairs)
	}
}

func TestGenerateInitSh(t *testing.T) {
	s, _ := load(t, testFeaturesCSV, "", "", LoadOptions{})
	var buf bytes.Buffer
	if err := Generators["init.sh"](&buf, s); err != nil {
		t.Fatalf("generate init.sh: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "block=yes") {
		t.Fatalf("expected block=yes in init.sh output:\n%s", out)
	}
}

func TestGenerateCheckHReflectsImplications(t *testing.T) {
	implied := "--no-learn,--no-reduce\n"
	s, _ := load(t, testFeaturesCSV, implied, "", LoadOptions{})
	var buf bytes.Buffer
	if err := Generators["check.h"](&buf, s); err != nil {
		t.Fatalf("generate check.h: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "defined(NLEARN) && defined(NREDUCE)") {
		t.Fatalf("expected an NLEARN/NREDUCE guard in check.h output:\n%s", out)
	}
}

func TestGeneratorNamesCoversEveryGenerator(t *testing.T) {
	names := GeneratorNames()
	if len(names) != len(Generators) {
		t.Fatalf("GeneratorNames() length mismatch: %d vs %d", len(names), len(Generators))
	}
}
