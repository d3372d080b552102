// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

package escalate

import (
	"strings"
	"testing"
)

func TestHelperCommand_Arguments(t *testing.T) {
	command := helperCommand("sudo", "/bin/sh", "/etc/hosts")

	joined := strings.Join(command.Args, " ")
	for _, required := range []string{
		"--stdin",
		"--prompt=" + PasswordMarker + "\n",
		"--preserve-env=" + TargetEnvVariable,
	} {
		if !strings.Contains(joined, required) {
			t.Errorf("missing argument %q in %q", required, joined)
		}
	}

	// The script is the final argument and references the environment
	// variable, not the literal path.
	script := command.Args[len(command.Args)-1]
	if !strings.Contains(script, PayloadMarker) {
		t.Errorf("script missing payload marker: %q", script)
	}
	if !strings.Contains(script, `"$`+TargetEnvVariable+`"`) {
		t.Errorf("script missing quoted env reference: %q", script)
	}
}

func TestHelperCommand_PathTravelsInEnvironmentNotArgv(t *testing.T) {
	// A hostile filename must not be able to alter the shell script.
	target := `/tmp/x"; rm -rf $HOME; echo "`

	command := helperCommand("sudo", "/bin/sh", target)

	for _, argument := range command.Args {
		if strings.Contains(argument, target) {
			t.Errorf("target path leaked into argv: %q", argument)
		}
	}

	found := false
	for _, entry := range command.Env {
		if entry == TargetEnvVariable+"="+target {
			found = true
		}
	}
	if !found {
		t.Error("target path missing from child environment")
	}
}

func TestHelperCommand_PromptEndsWithNewline(t *testing.T) {
	// The marker must arrive as a complete line; sudo itself does not
	// terminate its prompt.
	command := helperCommand("sudo", "/bin/sh", "/etc/hosts")

	for _, argument := range command.Args {
		if strings.HasPrefix(argument, "--prompt=") {
			if !strings.HasSuffix(argument, "\n") {
				t.Errorf("prompt argument lacks trailing newline: %q", argument)
			}
			return
		}
	}
	t.Fatal("no --prompt argument found")
}
