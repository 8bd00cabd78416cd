package service

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// OpenBrowser opens url in the browser named by $BROWSER, or the platform default
func OpenBrowser(url string) error {
	cmd, args, err := browserCommand(url)
	if err != nil {
		return err
	}
	// Start, not Run: the browser may outlive us
	if err := exec.Command(cmd, args...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

func browserCommand(url string) (string, []string, error) {
	if custom := strings.TrimSpace(os.Getenv("BROWSER")); custom != "" {
		return custom, []string{url}, nil
	}

	switch runtime.GOOS {
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "cmd", []string{"/c", "start", url}, nil
	case "linux", "freebsd", "openbsd":
		for _, openCmd := range []string{"xdg-open", "gnome-open", "kde-open"} {
			if _, err := exec.LookPath(openCmd); err == nil {
				return openCmd, []string{url}, nil
			}
		}
		return "", nil, fmt.Errorf("no suitable browser opener found")
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}
