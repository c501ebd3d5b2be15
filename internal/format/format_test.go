package format_test

import (
	"errors"
	"testing"

	"go.followtheprocess.codes/reqconv/internal/format"
	"go.followtheprocess.codes/test"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string        // Name of the test case
		in      string        // Format name to parse
		want    format.Format // Expected format
		wantErr bool          // Whether we want an error
	}{
		{name: "curl", in: "curl", want: format.Curl},
		{name: "fetch", in: "fetch", want: format.Fetch},
		{name: "axios", in: "axios", want: format.Axios},
		{name: "postman", in: "postman", want: format.Postman},
		{name: "json", in: "json", want: format.JSON},
		{name: "yaml", in: "yaml", want: format.YAML},
		{name: "yml alias", in: "yml", want: format.YAML},
		{name: "toml", in: "toml", want: format.TOML},
		{name: "http", in: "http", want: format.HTTP},
		{name: "case insensitive", in: "  CuRL ", want: format.Curl},
		{name: "unknown", in: "wget", want: format.Unknown, wantErr: true},
		{name: "empty", in: "", want: format.Unknown, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := format.ParseFormat(tt.in)
			test.WantErr(t, err, tt.wantErr)
			test.Equal(t, got, tt.want)

			if tt.wantErr {
				test.True(t, errors.Is(err, format.ErrUnknownFormat), test.Context("error should wrap ErrUnknownFormat"))
			}
		})
	}
}

func TestFormatString(t *testing.T) {
	for _, name := range append(format.Importable(), format.Exportable()...) {
		f, err := format.ParseFormat(name)
		test.Ok(t, err)
		test.Equal(t, f.String(), name)
	}

	test.Equal(t, format.Unknown.String(), "unknown")
	test.Equal(t, format.Format(999).String(), "unknown")
}

func TestNewImporter(t *testing.T) {
	for _, name := range format.Importable() {
		f, err := format.ParseFormat(name)
		test.Ok(t, err)

		importer, err := format.NewImporter(f)
		test.Ok(t, err, test.Context("NewImporter(%s)", name))
		test.True(t, importer != nil)
	}

	_, err := format.NewImporter(format.JSON)
	test.True(t, errors.Is(err, format.ErrUnsupported), test.Context("importing JSON should be unsupported, got %v", err))

	_, err = format.NewImporter(format.Unknown)
	test.True(t, errors.Is(err, format.ErrUnknownFormat), test.Context("got %v", err))
}

func TestNewExporter(t *testing.T) {
	for _, name := range format.Exportable() {
		f, err := format.ParseFormat(name)
		test.Ok(t, err)

		exporter, err := format.NewExporter(f)
		test.Ok(t, err, test.Context("NewExporter(%s)", name))
		test.True(t, exporter != nil)
	}

	_, err := format.NewExporter(format.Postman)
	test.True(t, errors.Is(err, format.ErrUnsupported), test.Context("exporting postman should be unsupported, got %v", err))

	_, err = format.NewExporter(format.Unknown)
	test.True(t, errors.Is(err, format.ErrUnknownFormat), test.Context("got %v", err))
}
