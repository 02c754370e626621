package ui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// For a list of possible icons, see: https://specifications.freedesktop.org/icon-naming-spec/icon-naming-spec-latest.html
const (
	IconDialogError = "dialog-error"
	IconDialogWarn  = "dialog-warning"

	UrgencyNormal   = "normal"
	UrgencyCritical = "critical"
)

func NotifyWarn(title, text string) {
	notify(UrgencyNormal, title, text, IconDialogWarn)
}

func NotifyError(title, text string) {
	notify(UrgencyCritical, title, text, IconDialogError)
}

func notify(urgency, title, text, icon string) {
	if err := NotifySend(urgency, title, text, icon); err != nil {
		Warning("Cannot send notification: %v", err)
	}
}

// NotifySend shows a desktop notification in the session of the user owning $DISPLAY.
// cfan runs as root, so the notification has to be sent through that user's dbus session.
func NotifySend(urgency, title, text, icon string) error {
	display, exists := os.LookupEnv("DISPLAY")
	if !exists {
		return fmt.Errorf("missing env variable 'DISPLAY'")
	}

	user, err := findDisplayUser(display)
	if err != nil {
		return err
	}

	output, err := exec.Command("id", "-u", user).Output()
	userId := strings.TrimSpace(string(output))
	if err != nil || len(userId) <= 0 {
		return fmt.Errorf("unable to detect user id of %s: %v", user, err)
	}

	cmd := exec.Command("sudo", "-u", user,
		"DISPLAY="+display,
		"DBUS_SESSION_BUS_ADDRESS=unix:path=/run/user/"+userId+"/bus",
		"notify-send",
		"-a", "cfan",
		"-u", urgency,
		"-i", icon,
		title, text,
	)
	return cmd.Run()
}

func findDisplayUser(display string) (string, error) {
	output, err := exec.Command("who").Output()
	if err != nil {
		return "", fmt.Errorf("unable to list logged in users: %w", err)
	}
	for _, line := range strings.Split(string(output), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 && strings.Contains(line, display) {
			return fields[0], nil
		}
	}
	return "", fmt.Errorf("no user found for display session %s", display)
}
