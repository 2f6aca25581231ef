// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybrota/avlscript/script"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commands.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	// keep the developer's own ~/.avlscript.yaml out of the picture
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunCommand(t *testing.T) {
	path := writeScript(t, "insert 10\ninsert 20\ninsert 30\nprint\ndelete 10\nprint\n")
	want := "20\n|l_10\n|r_30\n\n20\n|r_30\n\n"

	for _, args := range [][]string{
		{"run", path},
		{path},
		{"run", "--check", "--log-level", "debug", path},
	} {
		stdout, _, err := execute(t, args...)
		require.NoError(t, err, "args %v", args)
		assert.Equal(t, want, stdout, "args %v", args)
	}
}

func TestRunCommandMalformed(t *testing.T) {
	path := writeScript(t, "insert 1\nprint\nremove 1\nprint\n")

	stdout, _, err := execute(t, "run", path)
	require.ErrorIs(t, err, script.ErrMalformedCommand)
	assert.Equal(t, "1\n\n"+malformedMessage, stdout)
}

func TestRunCommandStats(t *testing.T) {
	path := writeScript(t, "insert 1 insert 1 print")

	_, stderr, err := execute(t, "run", "--stats", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "duplicates")
}

func TestRunCommandErrors(t *testing.T) {
	_, _, err := execute(t, "run", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeScript(t, "print")
	_, _, err = execute(t, "run", "--log-level", "loud", path)
	assert.ErrorContains(t, err, "invalid log level")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", stdout)
}

func TestSettingsCommand(t *testing.T) {
	stdout, _, err := execute(t, "settings")
	require.NoError(t, err)
	assert.Contains(t, stdout, "cache_ttl: 30m0s")
}
