package ovh_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sipico/ovh-api-client/internal/ovh"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ovh.conf")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestNewClientFromFile(t *testing.T) {
	t.Parallel()

	server := newTimeServer(1000)
	defer server.Close()

	path := writeConfig(t, `[default]
endpoint=ovh-eu

[ovh-eu]
application_key=my_app_key
application_secret=my_app_secret
consumer_key=my_consumer_key
`)

	client, err := ovh.NewClientFromFile(context.Background(), path,
		ovh.WithBaseURL(server.URL),
		ovh.WithTimeSource(func() int64 { return 1000 }),
	)
	if err != nil {
		t.Fatalf("NewClientFromFile failed: %v", err)
	}

	if _, err := client.Get(context.Background(), "/some/path"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	header := server.header()
	if got := header.Get("X-Ovh-Application"); got != "my_app_key" {
		t.Errorf("X-Ovh-Application = %q, want \"my_app_key\"", got)
	}
	if got := header.Get("X-Ovh-Consumer"); got != "my_consumer_key" {
		t.Errorf("X-Ovh-Consumer = %q, want \"my_consumer_key\"", got)
	}
	want := ovh.Sign("my_app_secret", "my_consumer_key", "GET", server.URL+"/some/path", "", "1000")
	if got := header.Get("X-Ovh-Signature"); got != want {
		t.Errorf("X-Ovh-Signature = %q, want %q", got, want)
	}
}

func TestNewClientFromFile_MissingKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantKey string
	}{
		{
			name:    "no endpoint",
			content: "[default]\n",
			wantKey: "endpoint",
		},
		{
			name: "no application key",
			content: `[default]
endpoint=ovh-eu

[ovh-eu]
application_secret=s
consumer_key=c
`,
			wantKey: "application_key",
		},
		{
			name: "no application secret",
			content: `[default]
endpoint=ovh-eu

[ovh-eu]
application_key=a
consumer_key=c
`,
			wantKey: "application_secret",
		},
		{
			name: "no consumer key",
			content: `[default]
endpoint=ovh-eu

[ovh-eu]
application_key=a
application_secret=s
`,
			wantKey: "consumer_key",
		},
		{
			name: "credential section absent",
			content: `[default]
endpoint=ovh-eu
`,
			wantKey: "application_key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, tt.content)
			client, err := ovh.NewClientFromFile(context.Background(), path)
			if client != nil {
				t.Error("expected nil client")
			}
			var missing *ovh.MissingKeyError
			if !errors.As(err, &missing) {
				t.Fatalf("expected *ovh.MissingKeyError, got %v", err)
			}
			if missing.Key != tt.wantKey {
				t.Errorf("missing key = %q, want %q", missing.Key, tt.wantKey)
			}
		})
	}
}

func TestNewClientFromFile_FileNotFound(t *testing.T) {
	t.Parallel()

	client, err := ovh.NewClientFromFile(context.Background(), filepath.Join(t.TempDir(), "absent.conf"))
	if client != nil {
		t.Error("expected nil client")
	}
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
