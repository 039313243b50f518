package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

var ErrNoURL = errors.New("article has no url")

// Command returns the platform command that opens rawURL, without running it.
func Command(goos, rawURL string) (*exec.Cmd, error) {
	if err := check(rawURL); err != nil {
		return nil, err
	}

	switch goos {
	case "darwin":
		return exec.Command("open", rawURL), nil
	case "windows":
		// rundll32 avoids the shell interpretation of cmd /c start
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL), nil
	default:
		return exec.Command("xdg-open", rawURL), nil
	}
}

// Open launches the system browser on rawURL and does not wait for it.
func Open(rawURL string) error {
	cmd, err := Command(runtime.GOOS, rawURL)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}
	go cmd.Wait()
	return nil
}

func check(rawURL string) error {
	if rawURL == "" {
		return ErrNoURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open URL with scheme %q (only http/https allowed)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL %q: missing host", rawURL)
	}
	return nil
}
