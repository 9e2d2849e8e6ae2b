package watcher

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
)

// Notify sends a desktop notification for the given alert. On macOS it uses
// osascript, on Linux notify-send. If neither works, it prints to stderr.
func Notify(alert Alert) error {
	switch runtime.GOOS {
	case "darwin":
		return notifyMacOS(alert)
	case "linux":
		return notifyLinux(alert)
	default:
		return notifyFallback(os.Stderr, alert)
	}
}

func notifyMacOS(alert Alert) error {
	script := fmt.Sprintf(
		`display notification %q with title "taskwatch" subtitle %q`,
		alert.Message, alert.Title,
	)
	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return notifyFallback(os.Stderr, alert)
	}
	return nil
}

func notifyLinux(alert Alert) error {
	if _, err := exec.LookPath("notify-send"); err != nil {
		return notifyFallback(os.Stderr, alert)
	}

	args := []string{"--urgency", urgency(alert.Level), "taskwatch: " + alert.Title, alert.Message}
	if err := exec.Command("notify-send", args...).Run(); err != nil {
		return notifyFallback(os.Stderr, alert)
	}
	return nil
}

// urgency maps an alert level to a notify-send urgency.
func urgency(level string) string {
	switch level {
	case LevelCritical:
		return "critical"
	case LevelWarning:
		return "normal"
	default:
		return "low"
	}
}

func notifyFallback(w io.Writer, alert Alert) error {
	_, err := fmt.Fprintf(w, "[%s] %s: %s\n", alert.Level, alert.Title, alert.Message)
	return err
}
