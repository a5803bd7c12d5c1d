package pathutils

import (
	"path/filepath"
	"testing"
)

func TestToAbsolutePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ToAbsolutePath("~/projects/shop/kship.yml")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, "projects/shop/kship.yml"); got != want {
		t.Fatalf("want %s, got %s", want, got)
	}

	got, _ = ToAbsolutePath("kship.yml")
	if got != "kship.yml" {
		t.Fatalf("relative paths must be left alone, got %s", got)
	}
}
