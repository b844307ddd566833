package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oneUser = `[{"id":1,"name":"Leanne Graham","username":"Bret","email":"Sincere@april.biz",
"address":{"street":"Kulas Light","suite":"Apt. 556","city":"Gwenborough","zipcode":"92998-3874"},
"phone":"1-770-736-8031 x56442","website":"hildegard.org","company":{"name":"Romaguera-Crona"}}]`

func upstream(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestFetchCmd(t *testing.T) {
	url := upstream(t, http.StatusOK, oneUser)

	tests := []struct {
		format string
		want   []string
	}{
		{"cards", []string{"[L] Leanne Graham (@Bret)", "Kulas Light Apt. 556", "Company: Romaguera-Crona"}},
		{"table", []string{"NAME", "Leanne Graham", "Gwenborough"}},
		{"json", []string{`"username": "Bret"`}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, status, err := execute(t, "fetch", "--url", url, "-f", tt.format)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			assert.Contains(t, status, "Loaded 1 user")
		})
	}
}

func TestFetchCmd_Failure(t *testing.T) {
	url := upstream(t, http.StatusNotFound, `{}`)

	out, status, err := execute(t, "fetch", "--url", url)
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, status, "Error: HTTP Error: 404 - Not Found")
}

func TestFetchCmd_BadFormat(t *testing.T) {
	_, _, err := execute(t, "fetch", "-f", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestInitCmd(t *testing.T) {
	dir := t.TempDir()

	out, _, err := execute(t, "init", dir, "--title", "Staff")
	require.NoError(t, err)
	assert.Contains(t, out, "created")
	assert.FileExists(t, filepath.Join(dir, "userpanel.yaml"))

	_, _, err = execute(t, "init", dir)
	require.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "upctl vdev")
}
