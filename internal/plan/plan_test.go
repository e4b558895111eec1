package plan_test

import (
	"os"
	"path/filepath"
	"testing"

	"shelve/internal/plan"
)

func TestRelativeDir(t *testing.T) {
	cases := []struct {
		category string
		date     string
		ext      string
		want     string
	}{
		{"Images", "", ".jpg", filepath.Join("Images", "JPG")},
		{"Documents", "2026-08-23", ".txt", filepath.Join("Documents", "2026-08-23", "TXT")},
		{"Other", "", "", filepath.Join("Other", "MISC")},
		{"Archives", "", ".7z", filepath.Join("Archives", "7Z")},
	}
	for _, tc := range cases {
		if got := plan.RelativeDir(tc.category, tc.date, tc.ext); got != tc.want {
			t.Fatalf("RelativeDir(%q, %q, %q) = %q, want %q", tc.category, tc.date, tc.ext, got, tc.want)
		}
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func TestResolvePrefersUnsuffixedName(t *testing.T) {
	dest := t.TempDir()
	resolver := plan.NewResolver(0)

	got, err := resolver.Resolve(dest, "Images/JPG", "a.jpg")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := filepath.Join(dest, "Images/JPG", "a.jpg"); got != want {
		t.Fatalf("Resolve = %q, want %q", got, want)
	}
	if _, err := os.Stat(filepath.Dir(got)); !os.IsNotExist(err) {
		t.Fatal("Resolve must not create the target directory")
	}
}

func TestResolveContinuesPastExistingSuffixes(t *testing.T) {
	dest := t.TempDir()
	touch(t, filepath.Join(dest, "Images/JPG/a.jpg"))
	touch(t, filepath.Join(dest, "Images/JPG/a (1).jpg"))

	resolver := plan.NewResolver(0)
	got, err := resolver.Resolve(dest, "Images/JPG", "a.jpg")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := filepath.Join(dest, "Images/JPG", "a (2).jpg"); got != want {
		t.Fatalf("Resolve = %q, want %q", got, want)
	}
}

func TestResolveHonorsReservations(t *testing.T) {
	dest := t.TempDir()
	resolver := plan.NewResolver(0)

	seen := make(map[string]struct{})
	wantNames := []string{"a.jpg", "a (1).jpg", "a (2).jpg"}
	for i, want := range wantNames {
		got, err := resolver.Resolve(dest, "Images/JPG", "a.jpg")
		if err != nil {
			t.Fatalf("Resolve #%d: %v", i+1, err)
		}
		if filepath.Base(got) != want {
			t.Fatalf("Resolve #%d = %q, want base %q", i+1, got, want)
		}
		if _, dup := seen[got]; dup {
			t.Fatalf("Resolve #%d repeated %q", i+1, got)
		}
		seen[got] = struct{}{}
		resolver.Reserve(got)
	}
}

func TestResolveWithoutReserveRepeats(t *testing.T) {
	dest := t.TempDir()
	resolver := plan.NewResolver(0)

	first, err := resolver.Resolve(dest, "Images/JPG", "a.jpg")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	second, err := resolver.Resolve(dest, "Images/JPG", "a.jpg")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if first != second {
		t.Fatalf("unreserved candidate moved from %q to %q", first, second)
	}
}

func TestResolveKeepsSuffixCaseAndHiddenNames(t *testing.T) {
	dest := t.TempDir()
	touch(t, filepath.Join(dest, "Images/JPG/Photo.JPG"))
	touch(t, filepath.Join(dest, "Other/MISC/.bashrc"))

	resolver := plan.NewResolver(0)
	got, err := resolver.Resolve(dest, "Images/JPG", "Photo.JPG")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if base := filepath.Base(got); base != "Photo (1).JPG" {
		t.Fatalf("suffixed name = %q, want Photo (1).JPG", base)
	}

	got, err = resolver.Resolve(dest, "Other/MISC", ".bashrc")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if base := filepath.Base(got); base != ".bashrc (1)" {
		t.Fatalf("hidden name = %q, want .bashrc (1)", base)
	}
}

func TestResolveAttemptCap(t *testing.T) {
	dest := t.TempDir()
	touch(t, filepath.Join(dest, "Images/JPG/a.jpg"))
	touch(t, filepath.Join(dest, "Images/JPG/a (1).jpg"))
	touch(t, filepath.Join(dest, "Images/JPG/a (2).jpg"))

	resolver := plan.NewResolver(2)
	if _, err := resolver.Resolve(dest, "Images/JPG", "a.jpg"); err == nil {
		t.Fatal("expected the attempt cap to surface an error")
	}
}
