package spec_test

import (
	"flag"
	"net/http"
	"os"
	"testing"

	"go.followtheprocess.codes/reqconv/internal/spec"
	"go.followtheprocess.codes/snapshot"
	"go.followtheprocess.codes/test"
)

var (
	update = flag.Bool("update", false, "Update snapshots")
	clean  = flag.Bool("clean", false, "Clean all snapshots and recreate")
)

func TestNewRequest(t *testing.T) {
	request := spec.NewRequest()

	test.Equal(t, request.Method, http.MethodGet)
	test.Equal(t, request.URL, "")
	test.Equal(t, request.Headers.Len(), 0)
	test.Equal(t, request.Body, "")
	test.Equal(t, request.ContentType, "")
	test.True(t, request.Auth == nil, test.Context("auth should be nil"))
	test.True(t, request.FollowRedirects, test.Context("redirects should be followed by default"))
	test.True(t, !request.Insecure, test.Context("insecure should be off by default"))
	test.True(t, request.IsSimple(), test.Context("a new request should be simple"))
}

func TestSetHeaderContentType(t *testing.T) {
	tests := []struct {
		name  string // Name of the test case
		key   string // Header key to set
		value string // Header value to set
		want  string // Expected cached content type
	}{
		{name: "canonical", key: "Content-Type", value: "application/json", want: "application/json"},
		{name: "lower", key: "content-type", value: "text/plain", want: "text/plain"},
		{name: "upper", key: "CONTENT-TYPE", value: "text/csv", want: "text/csv"},
		{name: "other header", key: "Accept", value: "application/json", want: ""},
		{name: "similar header", key: "Content-Types", value: "nope", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := spec.NewRequest()
			request.SetHeader(tt.key, tt.value)

			test.Equal(t, request.ContentType, tt.want)

			got, ok := request.Headers.Lookup(tt.key)
			test.True(t, ok, test.Context("header %q not stored", tt.key))
			test.Equal(t, got, tt.value)
		})
	}
}

func TestIsSimple(t *testing.T) {
	tests := []struct {
		modify func(r *spec.Request) // Change to make to a new request
		name   string                // Name of the test case
		want   bool                  // Expected IsSimple
	}{
		{
			name:   "default",
			modify: func(r *spec.Request) {},
			want:   true,
		},
		{
			name:   "insecure is still simple",
			modify: func(r *spec.Request) { r.Insecure = true },
			want:   true,
		},
		{
			name:   "post",
			modify: func(r *spec.Request) { r.Method = http.MethodPost },
			want:   false,
		},
		{
			name:   "header",
			modify: func(r *spec.Request) { r.SetHeader("Accept", "*/*") },
			want:   false,
		},
		{
			name:   "body",
			modify: func(r *spec.Request) { r.Body = "hello" },
			want:   false,
		},
		{
			name:   "auth",
			modify: func(r *spec.Request) { r.Auth = &spec.Auth{User: "me"} },
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := spec.NewRequest()
			request.URL = "https://example.com"
			tt.modify(&request)

			test.Equal(t, request.IsSimple(), tt.want)
		})
	}
}

func TestAuthEncoded(t *testing.T) {
	tests := []struct {
		name string    // Name of the test case
		auth spec.Auth // Credentials to encode
		want string    // Expected base64
	}{
		{name: "both", auth: spec.Auth{User: "alice", Pass: "secret"}, want: "YWxpY2U6c2VjcmV0"},
		{name: "no password", auth: spec.Auth{User: "alice"}, want: "YWxpY2U6"},
		{name: "empty", auth: spec.Auth{}, want: "Og=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.Equal(t, tt.auth.Encoded(), tt.want)
		})
	}
}

func TestRequestString(t *testing.T) {
	tests := []struct {
		request func() spec.Request // Builds the request
		name    string              // Name of the test case
		want    string              // Expected .http text
	}{
		{
			name: "simple",
			request: func() spec.Request {
				request := spec.NewRequest()
				request.URL = "https://api.nowhere.com/v1/items/1234"

				return request
			},
			want: "###\nGET https://api.nowhere.com/v1/items/1234\n",
		},
		{
			name: "no redirect",
			request: func() spec.Request {
				request := spec.NewRequest()
				request.URL = "https://api.nowhere.com/v1/items/1234"
				request.FollowRedirects = false

				return request
			},
			want: "###\n# @no-redirect = true\nGET https://api.nowhere.com/v1/items/1234\n",
		},
		{
			name: "explicit authorization header wins",
			request: func() spec.Request {
				request := spec.NewRequest()
				request.URL = "https://x.com"
				request.SetHeader("authorization", "Bearer abc")
				request.Auth = &spec.Auth{User: "alice", Pass: "secret"}

				return request
			},
			want: "###\nGET https://x.com\nauthorization: Bearer abc\n",
		},
		{
			name: "with body",
			request: func() spec.Request {
				request := spec.NewRequest()
				request.Method = http.MethodPost
				request.URL = "https://somewhere.org/api/items/1"
				request.SetHeader("Content-Type", "application/json")
				request.Body = `{"stuff":"here"}`

				return request
			},
			want: "###\nPOST https://somewhere.org/api/items/1\nContent-Type: application/json\n\n{\"stuff\":\"here\"}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := snapshot.New(
				t,
				snapshot.Update(*update),
				snapshot.Clean(*clean),
				snapshot.Color(os.Getenv("CI") == ""),
			)

			got := tt.request().String()
			test.Diff(t, got, tt.want)

			snap.Snap(got)
		})
	}
}
