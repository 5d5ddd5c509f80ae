package fs

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/akeil/bmpscale/internal/logging"
)

// Move moves a file from src to dst.
// It tries os.Rename() first and falls back on "copy and delete".
//
// If src cannot be deleted after a successful copy,
// NO error is returned and src remains as it was.
func Move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	// Rename may have failed when moving across file systems
	// so try again w/ copy & delete.
	logging.Debug("Rename failed for %v -> %v, fall back on copy and delete", src, dst)
	r, err := os.Open(src)
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := os.Create(dst)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, r)
	if err != nil {
		w.Close()
		os.Remove(dst)
		return err
	}
	err = w.Close()
	if err != nil {
		os.Remove(dst)
		return err
	}

	// A bit untidy, but we carry on even if we fail to clean up behind us.
	ignoredErr := os.Remove(src)
	if ignoredErr != nil {
		logging.Error("Failed to remove file %v", src)
	}

	return nil
}

// WriteAtomic creates path with the content produced by write.
//
// The content goes to a temporary file next to path which is moved into
// place only if write and close succeed. On failure, the temporary file is
// removed and an existing file at path is left untouched.
func WriteAtomic(path string, write func(w io.Writer) error) error {
	dir, name := filepath.Split(path)
	tmp := filepath.Join(dir, "."+name+"."+uuid.New().String()+".tmp")

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	logging.Debug("Write %q via %q", path, tmp)

	err = write(f)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		removeErr := os.Remove(tmp)
		if removeErr != nil {
			logging.Warning("Failed to remove temporary file %q: %v", tmp, removeErr)
		}
		return err
	}

	err = Move(tmp, path)
	if err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
