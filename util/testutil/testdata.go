package testutil

import (
	"errors"
	"os"
	"path"
	"testing"
)

// Find file under the nearest testdata directory, walking up until the directory that contains go.mod.
func FindTestdata(t *testing.T, relativePath string) string {
	td := "testdata"
	wdir, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	dir := wdir
	mf := "go.mod"
	for {
		cpath := path.Join(dir, td)
		ok, err := fileExists(cpath)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			return path.Join(cpath, relativePath)
		}
		if ok, _ := fileExists(path.Join(dir, mf)); ok {
			// already the top level in project directory, give up
			break
		}
		parent := path.Dir(dir) // go up one level
		if parent == dir {
			break
		}
		dir = parent
	}
	t.Fatalf("testdata file: '**/%v' not found", path.Join(td, relativePath))
	return ""
}

func fileExists(p string) (bool, error) {
	_, err := os.Stat(p)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
