package site

import (
	"io"
	"os"
	"path/filepath"
)

// copyDir recursively copies a directory and returns the number of files copied.
func copyDir(src, dst string) (int, error) {
	n := 0
	err := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(dst, rel)

		if info.IsDir() {
			return os.MkdirAll(destPath, 0o755)
		}

		n++
		return copyFile(path, destPath)
	})
	return n, err
}

// copyFile copies a single file.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}
	return dstFile.Close()
}

// Asset returns a generated stylesheet or script by file name, for serving
// without a build. ok is false for unknown names.
func Asset(name string) (data string, contentType string, ok bool) {
	switch name {
	case "style.css":
		return cssContent, "text/css; charset=utf-8", true
	case "script.js":
		return jsContent, "application/javascript; charset=utf-8", true
	case "router.js":
		return routerJS, "application/javascript; charset=utf-8", true
	}
	return "", "", false
}
