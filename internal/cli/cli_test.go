package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ralt/wpkgedit/internal/buffer"
	"github.com/ralt/wpkgedit/internal/models"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeDoc(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func TestTemplateToStdout(t *testing.T) {
	out, err := run(t, "template", "app_portable")
	require.NoError(t, err)
	require.Contains(t, out, `id = "application-app"`)

	_, err = run(t, "template", "unknown")
	require.Error(t, err)
}

func TestTemplateFormatVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkg.xml.gz")

	_, err := run(t, "template", "custom", "-o", path)
	require.NoError(t, err)

	_, err = run(t, "format", "-w", path)
	require.NoError(t, err)

	out, err := run(t, "verify", "--strict", path)
	require.NoError(t, err)
	require.Equal(t, path+": ok\n", out)

	out, err = run(t, "format", path)
	require.NoError(t, err)
	require.Contains(t, out, `<package id="custom-package"`)
	require.Contains(t, out, "<!--\nDescription of the custom package\n-->")
}

func TestVerifyReportsLine(t *testing.T) {
	good := writeDoc(t, "good.xml", "<packages><package/></packages>")
	bad := writeDoc(t, "bad.xml", "<packages>\n<package>\n</packages>\n")

	out, err := run(t, "verify", good, bad)
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 of 2")
	require.Contains(t, out, good+": ok\n")
	require.Contains(t, out, bad+":3: ")
}

func TestVerifyStrictRequiresPackage(t *testing.T) {
	path := writeDoc(t, "empty.xml", "<packages/>")

	_, err := run(t, "verify", path)
	require.NoError(t, err)

	out, err := run(t, "verify", "--strict", path)
	require.Error(t, err)
	require.Contains(t, out, "no package element")
}

func TestExpand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkg.xml")
	_, err := run(t, "template", "installable", "-o", path)
	require.NoError(t, err)

	out, err := run(t, "expand", "--arch", "x64", path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], `install[0]: "C:\Windows\System32\cmd.exe"`)
	require.Contains(t, lines[0], `software-setup-x64.exe`)
	require.Equal(t, "upgrade[0]: include install", lines[1])

	_, err = run(t, "expand", "--arch", "arm", path)
	require.True(t, models.IsType(err, models.ErrInvalidConfig))
}

func TestComplete(t *testing.T) {
	path := writeDoc(t, "partial.xml", "<packages>\n<variable nam\n")

	out, err := run(t, "complete", path, "--line", "2", "--column", "13")
	require.NoError(t, err)
	require.Equal(t, "<variable name=\"\n", out)

	out, err = run(t, "complete", path, "--line", "2", "--column", "10")
	require.NoError(t, err)
	require.Equal(t, "name\nvalue\narchitecture\n", out)

	_, err = run(t, "complete", path, "--line", "4")
	require.True(t, models.IsType(err, models.ErrModel))
	require.ErrorIs(t, err, buffer.ErrLineOutOfRange)
	require.Contains(t, err.Error(), "has 3 lines")
}

func TestReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pkg.xml")
	_, err := run(t, "template", "installable", "-o", path)
	require.NoError(t, err)

	_, err = run(t, "replace", path, "Software name", "--with", "Tool", "-w")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `name     = "Tool"`)
	require.NotContains(t, string(data), "Software name")
}

func TestReplaceRefusesBrokenResult(t *testing.T) {
	path := writeDoc(t, "pkg.xml", `<packages><package id="a"/></packages>`)

	_, err := run(t, "replace", path, "<package ", "--with", "<pkg ", "-w")
	require.Error(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `<packages><package id="a"/></packages>`, string(data))
}

func TestHighlightToFile(t *testing.T) {
	path := writeDoc(t, "bad.xml", "<packages>\n<package>\n</packages>\n")
	html := filepath.Join(t.TempDir(), "out.html")

	_, err := run(t, "highlight", path, "-o", html)
	require.NoError(t, err)

	data, err := os.ReadFile(html)
	require.NoError(t, err)
	require.Contains(t, string(data), "<html")
}

func TestSigningNeedsOutput(t *testing.T) {
	path := writeDoc(t, "pkg.xml", `<packages><package id="a"/></packages>`)

	_, err := run(t, "format", path, "--sign-key", "/nonexistent/key.asc")
	require.True(t, models.IsType(err, models.ErrInvalidConfig))

	_, err = run(t, "format", path, "--sign-passphrase", "secret")
	require.True(t, models.IsType(err, models.ErrInvalidConfig))
}

func TestVerifyDirectory(t *testing.T) {
	dir := t.TempDir()
	for name, text := range map[string]string{
		"a.xml":        "<packages><package/></packages>",
		"nested/b.xml": "<packages>\n<package>\n</packages>\n",
		"readme.txt":   "not xml",
	} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	}

	out, err := run(t, "verify", dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 of 2")
	require.Contains(t, out, filepath.Join(dir, "a.xml")+": ok")
	require.Contains(t, out, filepath.Join(dir, "nested", "b.xml")+":3: ")
	require.NotContains(t, out, "readme")
}
