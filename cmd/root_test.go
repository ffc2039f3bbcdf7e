package cmd_test

import (
	"bytes"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbaseapps/qsip/cmd"
	"github.com/kbaseapps/qsip/json"
	"github.com/kbaseapps/qsip/test"
)

func writeObjects(t *testing.T, dir string) string {
	t.Helper()
	name := filepath.Join(dir, "objects.json")
	f, err := os.Create(name)
	test.ErrNil(t, err, "creating objects file")
	defer f.Close()
	w := json.NewWriter(f)
	test.ErrNil(t, w.Write(test.MatrixObject()), "writing matrix")
	return name
}

func TestConvertFlags(t *testing.T) {
	dir, cleanup := test.TempDir(t, "qsip-cmd")
	defer cleanup()
	objects := writeObjects(t, dir)
	out := filepath.Join(dir, "out")

	stderr := &bytes.Buffer{}
	rc := cmd.NewRootCommand(strings.NewReader(""), &bytes.Buffer{}, stderr)
	rc.SetArgs([]string{"convert", "--source", "file", "--path", objects, "--sink", "csv", "--out", out})
	test.ErrNil(t, rc.Execute(), "executing convert")

	if _, err := os.Stat(filepath.Join(out, "1_2_3.csv")); err != nil {
		t.Fatalf("expected csv output: %v, log: %s", err, stderr)
	}
}

func TestConvertEnvAndConfig(t *testing.T) {
	dir, cleanup := test.TempDir(t, "qsip-cmd")
	defer cleanup()
	objects := writeObjects(t, dir)
	out := filepath.Join(dir, "book.xlsx")

	conf := filepath.Join(dir, "qsip.toml")
	err := ioutil.WriteFile(conf, []byte(`
source = "file"
sink = "csv"
out = "`+filepath.Join(dir, "ignored")+`"
`), 0600)
	test.ErrNil(t, err, "writing config")

	os.Setenv("QSIP_SINK", "xlsx")
	os.Setenv("QSIP_OUT", out)
	defer os.Unsetenv("QSIP_SINK")
	defer os.Unsetenv("QSIP_OUT")

	rc := cmd.NewRootCommand(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	rc.SetArgs([]string{"convert", "--config", conf, "--path", objects})
	test.ErrNil(t, rc.Execute(), "executing convert")

	test.MustBe(t, "file", cmd.ConvertMain.Source, "source from config")
	test.MustBe(t, "xlsx", cmd.ConvertMain.Sink, "sink from env")
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected workbook: %v", err)
	}
}

func TestConvertFailure(t *testing.T) {
	dir, cleanup := test.TempDir(t, "qsip-cmd")
	defer cleanup()

	rc := cmd.NewRootCommand(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	rc.SetArgs([]string{"convert", "--path", filepath.Join(dir, "missing.json"), "--out", filepath.Join(dir, "out")})
	if err := rc.Execute(); err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestFetchRequiresToken(t *testing.T) {
	rc := cmd.NewRootCommand(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	rc.SetArgs([]string{"fetch", "--refs", "1/2/3"})
	test.ErrIs(t, rc.Execute(), "Auth token required to access workspace data")
}

func TestFetchSettings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	dir, cleanup := test.TempDir(t, "qsip-cmd")
	defer cleanup()
	conf := filepath.Join(dir, "qsip.toml")
	err := ioutil.WriteFile(conf, []byte(`refs = ["1/2/3", "4/5/6"]`+"\n"), 0600)
	test.ErrNil(t, err, "writing config")

	tests := []struct {
		name      string
		env       map[string]string
		args      []string
		wantToken string
		wantURL   string
		wantRefs  []string
	}{
		{
			name:      "kbase env",
			env:       map[string]string{"KB_AUTH_TOKEN": "kb", "KBASE_ENDPOINT": srv.URL},
			args:      []string{"--refs", "1/2/3"},
			wantToken: "kb",
			wantURL:   srv.URL,
			wantRefs:  []string{"1/2/3"},
		},
		{
			name:      "qsip env wins",
			env:       map[string]string{"KB_AUTH_TOKEN": "kb", "QSIP_TOKEN": "qs", "QSIP_ENDPOINT": srv.URL},
			args:      []string{"--refs", "1/2/3"},
			wantToken: "qs",
			wantURL:   srv.URL,
			wantRefs:  []string{"1/2/3"},
		},
		{
			name:      "flag wins",
			env:       map[string]string{"KB_AUTH_TOKEN": "kb"},
			args:      []string{"--refs", "1/2/3", "--token", "fl", "--endpoint", srv.URL},
			wantToken: "fl",
			wantURL:   srv.URL,
			wantRefs:  []string{"1/2/3"},
		},
		{
			name:      "refs list from config",
			env:       map[string]string{"KB_AUTH_TOKEN": "kb", "KBASE_ENDPOINT": srv.URL},
			args:      []string{"--config", conf},
			wantToken: "kb",
			wantURL:   srv.URL,
			wantRefs:  []string{"1/2/3", "4/5/6"},
		},
	}
	for _, tst := range tests {
		t.Run(tst.name, func(t *testing.T) {
			for k, v := range tst.env {
				os.Setenv(k, v)
				defer os.Unsetenv(k)
			}
			rc := cmd.NewRootCommand(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
			rc.SetArgs(append([]string{"fetch"}, tst.args...))
			if err := rc.Execute(); err == nil {
				t.Fatal("expected fetch from an unavailable service to fail")
			}
			test.MustBe(t, tst.wantToken, cmd.FetchMain.Token, "token")
			test.MustBe(t, tst.wantURL, cmd.FetchMain.Endpoint, "endpoint")
			test.MustBe(t, tst.wantRefs, cmd.FetchMain.Refs, "refs")
		})
	}
}
