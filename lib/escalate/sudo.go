// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

package escalate

import (
	"os"
	"os/exec"
)

const (
	// PasswordMarker is the exact line the helper emits on stderr each
	// time it wants a credential.
	PasswordMarker = "password:"

	// PayloadMarker is the exact line the helper emits on stderr
	// immediately before it starts reading the payload from stdin.
	PayloadMarker = "file contents:"

	// TargetEnvVariable carries the destination path into the helper.
	// The path travels in the child environment, never interpolated
	// into the shell script, so filenames containing shell
	// metacharacters cannot alter the command.
	TargetEnvVariable = "ROOTWRITE_TARGET"
)

// helperScript runs under the elevated shell. It announces readiness
// for the payload on stderr, then streams stdin to the target path.
// Closed stdin is end-of-payload; there is no length framing. The
// quoted variable expansion keeps the path an opaque word.
const helperScript = `echo "` + PayloadMarker + `" >&2 && exec cat > "$` + TargetEnvVariable + `"`

// helperCommand builds the sudo invocation for one privileged write.
//
//   - --stdin makes sudo read the credential from stdin (one line per
//     attempt), which is the same stream that later carries the
//     payload: sudo consumes exactly the password line, the shell's
//     cat consumes the rest.
//   - --prompt ends with an embedded newline so the password marker
//     always arrives on stderr as a complete line.
//   - --preserve-env forwards only the target variable through sudo's
//     environment reset.
//
// sudo applies its own retry limit for wrong passwords and exits
// nonzero when attempts are exhausted; the orchestrator imposes none.
func helperCommand(sudoPath, shellPath, target string) *exec.Cmd {
	command := exec.Command(sudoPath,
		"--stdin",
		"--prompt="+PasswordMarker+"\n",
		"--preserve-env="+TargetEnvVariable,
		"--",
		shellPath, "-c", helperScript,
	)
	command.Env = append(os.Environ(), TargetEnvVariable+"="+target)
	return command
}
