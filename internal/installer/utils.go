package installer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"env-bootstrap/internal/logger"
	"env-bootstrap/internal/runner"
)

// withTempDir creates a scoped working directory for one step's artifacts
// and removes it when fn returns, whatever the outcome.
func (in *Installer) withTempDir(prefix string, fn func(dir string) error) error {
	// An empty TempDir makes MkdirTemp fall back to os.TempDir()
	dir, err := os.MkdirTemp(in.Config.Install.TempDir, prefix)
	if err != nil {
		return fmt.Errorf("create temporary directory: %w", err)
	}
	logger.Debug("Created temporary directory %s", dir)
	// Remove the directory on every exit path, including a failed fn
	defer func() {
		if rerr := os.RemoveAll(dir); rerr != nil {
			logger.Warn("Failed to remove temporary directory %s: %v", dir, rerr)
		}
	}()
	return fn(dir)
}

// downloadFile downloads the content located at the specified URL and saves it to the destination path.
// It returns an error if the download or file write fails.
func (in *Installer) downloadFile(ctx context.Context, url, destPath string) error {
	logger.Info("Downloading %s", url)
	// Make an HTTP GET request to the given URL
	body, err := in.get(ctx, url)
	if err != nil {
		return err
	}
	// Close the response body when the function returns
	defer func() {
		if cerr := body.Close(); cerr != nil {
			logger.Error("Failed to close response body: %s", cerr)
		}
	}()

	// Create or truncate the file at destPath to write the downloaded content
	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destPath, err)
	}
	// Copy the entire response body into the destination file
	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		return fmt.Errorf("failed to write response to file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", destPath, err)
	}

	logger.Debug("Downloaded %s to %s", url, destPath)
	return nil
}

// fetchString returns the trimmed body of a small text resource.
func (in *Installer) fetchString(ctx context.Context, url string) (string, error) {
	body, err := in.get(ctx, url)
	if err != nil {
		return "", err
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", url, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (in *Installer) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	resp, err := in.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to GET %s: %w", url, err)
	}
	// Anything but 200 is a failed download, including redirects the client did not follow
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to GET %s: HTTP status %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}

// copyFile copies a file from src to dst and sets mode on the result.
// It creates any missing directories in the destination path.
func copyFile(src, dst string, mode os.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source failed: %w", err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("mkdir failed: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create target failed: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy failed: %w", err)
	}
	return os.Chmod(dst, mode)
}

// installBinary places src on the executable path as name. It copies
// directly when the bin dir is writable and falls back to `sudo install`.
func (in *Installer) installBinary(ctx context.Context, src, name string) (string, error) {
	dst := filepath.Join(in.Config.Install.BinDir, name)
	// Try a plain copy first, without sudo
	if err := copyFile(src, dst, 0o755); err == nil {
		logger.Info("Installed %s to %s", name, dst)
		return dst, nil
	} else {
		logger.Debug("Direct copy to %s failed (%v), retrying with elevated permissions", dst, err)
	}

	// `install` creates dst with the requested mode in one step
	if _, err := in.Runner.Run(ctx, in.privileged("install", "-m", "0755", src, dst)); err != nil {
		return "", err
	}
	logger.Info("Installed %s to %s", name, dst)
	return dst, nil
}

// artifactName expands {os} and {arch} in a configured archive name.
func (in *Installer) artifactName(pattern, arch string) string {
	return strings.NewReplacer("{os}", in.Platform.KernelName(), "{arch}", arch).Replace(pattern)
}

// privileged wraps a command in sudo unless the process already runs as root.
func (in *Installer) privileged(name string, args ...string) runner.Command {
	if !in.UseSudo {
		return runner.Command{Name: name, Args: args}
	}
	return runner.Command{Name: "sudo", Args: append([]string{name}, args...)}
}
