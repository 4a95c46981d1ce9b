package installer

import (
	"archive/tar"    // For reading .tar archives
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data

	"env-bootstrap/internal/logger"
)

// ExtractArchive unpacks src into dest, routing on the file extension.
// It returns the path of the archive's top-level entry inside dest.
func ExtractArchive(src, dest string) (string, error) {
	switch {
	case strings.HasSuffix(src, ".zip"):
		logger.Debug("compression type is zip")
		return extractZip(src, dest)
	case strings.HasSuffix(src, ".7z"):
		logger.Debug("compression type is .7z")
		return extract7z(src, dest)
	case strings.HasSuffix(src, ".tar"), strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"),
		strings.HasSuffix(src, ".tar.bz2"), strings.HasSuffix(src, ".tar.xz"):
		logger.Debug("compression type is .tar.*")
		return extractTarArchive(src, dest)
	default:
		return "", fmt.Errorf("unsupported archive format: %s", src)
	}
}

// safeJoin joins an archive entry name onto dest and rejects names that
// would land outside of it.
func safeJoin(dest, name string) (string, error) {
	root := filepath.Clean(dest)
	target := filepath.Join(root, name)
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes %s", name, dest)
	}
	return target, nil
}

func topLevelOf(name string) string {
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	return strings.Split(name, "/")[0]
}

// extractTarArchive handles tar and compressed tar variants
func extractTarArchive(src, dest string) (string, error) {
	logger.Debug("uncompressing %s to %s", src, dest)
	f, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var reader io.Reader = f
	switch {
	case strings.HasSuffix(src, ".tar.gz"), strings.HasSuffix(src, ".tgz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return "", err
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(src, ".tar.bz2"):
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(src, ".tar.xz"):
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return "", err
		}
		reader = xzr
	}

	tr := tar.NewReader(reader)
	var topLevel string

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		if topLevel == "" {
			topLevel = topLevelOf(hdr.Name)
		}

		target, err := safeJoin(dest, hdr.Name)
		if err != nil {
			return "", err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return "", err
			}
		case tar.TypeReg:
			if err := writeFile(target, tr, hdr.FileInfo().Mode().Perm()); err != nil {
				return "", err
			}
		case tar.TypeSymlink:
			if err := writeSymlink(dest, target, hdr.Linkname); err != nil {
				return "", err
			}
		}
	}
	return filepath.Join(dest, topLevel), nil
}

// extractZip extracts a .zip archive
func extractZip(src, dest string) (string, error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return "", err
	}
	defer r.Close()

	var topLevel string
	for _, f := range r.File {
		if topLevel == "" {
			topLevel = topLevelOf(f.Name)
		}
		path, err := safeJoin(dest, f.Name)
		if err != nil {
			return "", err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return "", err
			}
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		if f.Mode()&fs.ModeSymlink != 0 {
			link, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", err
			}
			if err := writeSymlink(dest, path, string(link)); err != nil {
				return "", err
			}
			continue
		}
		err = writeFile(path, rc, f.Mode().Perm())
		rc.Close()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(dest, topLevel), nil
}

// extract7z handles .7z extraction using the sevenzip library
func extract7z(src, dest string) (string, error) {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return "", fmt.Errorf("failed to open 7z archive: %w", err)
	}
	defer r.Close()

	var topLevel string
	for _, f := range r.File {
		if topLevel == "" {
			topLevel = topLevelOf(f.Name)
		}
		path, err := safeJoin(dest, f.Name)
		if err != nil {
			return "", err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(path, 0o755); err != nil {
				return "", err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		err = writeFile(path, rc, f.Mode().Perm())
		rc.Close()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(dest, topLevel), nil
}

func writeFile(path string, r io.Reader, perm fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if perm == 0 {
		perm = 0o644
	}
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// writeSymlink creates a link only when its target stays inside dest.
func writeSymlink(dest, path, link string) error {
	rel, err := filepath.Rel(filepath.Clean(dest), filepath.Join(filepath.Dir(path), link))
	if filepath.IsAbs(link) || err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return fmt.Errorf("symlink %s -> %s escapes %s", path, link, dest)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.Symlink(link, path)
}

// findExecutables scans a directory tree and returns all executable files matching the tool name
func findExecutables(root string, toolName string) ([]string, error) {
	logger.Debug("Scanning directory for executables: %s", root)
	var executables []string

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			logger.Debug("Failed to get file info for %s: %v", path, err)
			return nil
		}
		if !strings.HasPrefix(filepath.Base(path), toolName) {
			return nil
		}
		if mode := info.Mode(); mode.IsRegular() && mode.Perm()&0o111 != 0 {
			logger.Debug("Found executable: %s", path)
			executables = append(executables, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	if len(executables) == 0 {
		return nil, fmt.Errorf("no executables named %s found in %s", toolName, root)
	}
	return executables, nil
}

// extractBinary unpacks archive into dest and returns the path of the
// executable called name inside it.
func extractBinary(archive, dest, name string) (string, error) {
	extracted, err := ExtractArchive(archive, dest)
	if err != nil {
		return "", fmt.Errorf("failed to extract %s: %w", filepath.Base(archive), err)
	}
	info, err := os.Stat(extracted)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return extracted, nil
	}
	binaries, err := findExecutables(extracted, name)
	if err != nil {
		return "", err
	}
	for _, b := range binaries {
		if filepath.Base(b) == name {
			return b, nil
		}
	}
	return binaries[0], nil
}
