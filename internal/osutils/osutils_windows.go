//go:build windows

// Package osutils contains host-OS helpers that keep the server reachable
// from the phone.
package osutils

import (
	"fmt"
	"os/exec"
	"strings"
	"syscall"

	"github.com/kataras/golog"
	"golang.org/x/sys/windows"
)

// IsAdmin checks if the current process has administrative privileges.
func IsAdmin() bool {
	var token windows.Token
	h, _ := windows.GetCurrentProcess()
	if err := windows.OpenProcessToken(h, windows.TOKEN_QUERY, &token); err != nil {
		return false
	}
	defer token.Close()

	var sid *windows.SID
	err := windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&sid,
	)
	if err != nil {
		return false
	}
	defer windows.FreeSid(sid)

	member, err := token.IsMember(sid)
	if err != nil {
		return false
	}
	return member
}

// EnsureFirewallRule checks for an inbound allow rule on the touchpad port
// and creates one if missing, elevating via UAC when the process is not
// already admin. Without it the phone's connection is silently blocked.
func EnsureFirewallRule(port int) error {
	const ruleName = "RemotePad Touchpad"
	log := golog.Child("[firewall]")

	checkCmd := exec.Command("netsh", "advfirewall", "firewall", "show", "rule", "name="+ruleName)
	output, err := checkCmd.CombinedOutput()
	outputStr := string(output)

	if err == nil && strings.Contains(outputStr, ruleName) {
		portStr := fmt.Sprintf("%d", port)
		if strings.Contains(outputStr, portStr) && strings.Contains(outputStr, "Allow") {
			log.Debugf("rule %q already matches port %d", ruleName, port)
			return nil
		}
		log.Infof("rule %q exists but port/action mismatch, updating", ruleName)
	} else {
		log.Infof("rule %q not found, creating", ruleName)
	}

	psCommand := fmt.Sprintf(
		"Remove-NetFirewallRule -DisplayName '%s' -ErrorAction SilentlyContinue; New-NetFirewallRule -DisplayName '%s' -Direction Inbound -LocalPort %d -Protocol TCP -Action Allow -Profile Any",
		ruleName, ruleName, port,
	)

	if !IsAdmin() {
		log.Info("not elevated, requesting UAC via ShellExecute")

		verbPtr, _ := syscall.UTF16PtrFromString("runas")
		exePtr, _ := syscall.UTF16PtrFromString("powershell.exe")
		argPtr, _ := syscall.UTF16PtrFromString(fmt.Sprintf("-NoProfile -WindowStyle Hidden -Command \"%s\"", psCommand))

		var showCmd int32 // SW_HIDE
		if err := windows.ShellExecute(0, verbPtr, exePtr, argPtr, nil, showCmd); err != nil {
			return fmt.Errorf("launch elevated powershell: %w", err)
		}
		return nil
	}

	cmd := exec.Command("powershell", "-NoProfile", "-Command", psCommand)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("create firewall rule: %w (output: %s)", err, string(output))
	}
	log.Infof("applied inbound rule for port %d", port)
	return nil
}
