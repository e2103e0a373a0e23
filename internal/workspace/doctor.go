package workspace

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Check reports the state of the workspace layout at root to w. When fix is
// true, missing directories are created. It returns the number of problems
// that remain after any fixes.
func Check(w io.Writer, root string, fix bool) int {
	fmt.Fprintln(w, "Workspace check:")

	layout := Resolve(root)
	problems := 0
	for _, dir := range []string{layout.Root, layout.ProjectsDir, layout.TemplatesDir} {
		if !checkDir(w, dir, fix) {
			problems++
		}
	}
	return problems
}

func checkDir(w io.Writer, path string, fix bool) bool {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(w, "  [MISS] %s does not exist\n", path)
		if !fix {
			return false
		}
		if mkErr := os.MkdirAll(path, DirPerm); mkErr != nil {
			fmt.Fprintf(w, "  [FAIL] Could not create %s: %v\n", path, mkErr)
			return false
		}
		fmt.Fprintf(w, "  [FIX ] Created %s\n", path)
		return true
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return false
	}
	if !info.IsDir() {
		fmt.Fprintf(w, "  [WARN] %s exists but is not a directory\n", path)
		return false
	}
	fmt.Fprintf(w, "  [ OK ] %s exists\n", path)
	return true
}
