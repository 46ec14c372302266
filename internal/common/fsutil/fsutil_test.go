package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}
	if got, err := ExpandHome("/tmp"); err != nil || got != "/tmp" {
		t.Fatalf("got %q err=%v", got, err)
	}
	if got, err := ExpandHome(""); err != nil || got != "" {
		t.Fatalf("got %q err=%v", got, err)
	}
	p, err := ExpandHome("~")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if p != home {
		t.Fatalf("expected %q, got %q", home, p)
	}
	exp, err := ExpandHome("~/models")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if filepath.Base(exp) != "models" {
		t.Fatalf("unexpected expanded path: %q", exp)
	}
}

func TestResolvePath_MakesAbsolute(t *testing.T) {
	got, err := ResolvePath("app/view/index.html")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !filepath.IsAbs(got) {
		t.Fatalf("expected absolute path, got %q", got)
	}
	if got, _ := ResolvePath(""); got != "" {
		t.Fatalf("expected empty path to stay empty, got %q", got)
	}
}

func TestPathExists(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.onnx")
	if PathExists(p) {
		t.Fatalf("expected %s to be absent", p)
	}
	if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !PathExists(p) {
		t.Fatalf("expected %s to exist", p)
	}
}

func TestCreateSiblingAndPublish(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "nested", "model.onnx")
	f, err := CreateSibling(dest)
	if err != nil {
		t.Fatalf("create sibling: %v", err)
	}
	if !strings.HasPrefix(f.Name(), dest+".") || !strings.HasSuffix(f.Name(), ".part") {
		t.Fatalf("unexpected temp name %q", f.Name())
	}
	if _, err := f.WriteString("weights"); err != nil {
		t.Fatalf("write: %v", err)
	}
	tmp := f.Name()
	if err := Publish(f, dest); err != nil {
		t.Fatalf("publish: %v", err)
	}
	b, err := os.ReadFile(dest)
	if err != nil || string(b) != "weights" {
		t.Fatalf("dest content=%q err=%v", b, err)
	}
	if PathExists(tmp) {
		t.Fatalf("temp file %s left behind", tmp)
	}
}

func TestDiscardRemovesTemp(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "model.onnx")
	f, err := CreateSibling(dest)
	if err != nil {
		t.Fatalf("create sibling: %v", err)
	}
	tmp := f.Name()
	Discard(f)
	if PathExists(tmp) {
		t.Fatalf("expected %s to be removed", tmp)
	}
	if PathExists(dest) {
		t.Fatalf("dest should not exist")
	}
}
