package common

import (
	"errors"
	"testing"
)

func TestOutputFmt_Tree(t *testing.T) {
	tests := []struct {
		out  OutputFmt
		src  TreeFmt
		want TreeFmt
	}{
		{OutputFmtSame, TreeFmtJson, TreeFmtJson},
		{OutputFmtSame, TreeFmtYaml, TreeFmtYaml},
		{OutputFmtJson, TreeFmtYaml, TreeFmtJson},
		{OutputFmtYaml, TreeFmtJson, TreeFmtYaml},
	}
	for _, tt := range tests {
		t.Run(tt.out.String()+"_"+tt.src.String(), func(t *testing.T) {
			if got := tt.out.Tree(tt.src); got != tt.want {
				t.Errorf("Tree() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTreeFmt_Ext(t *testing.T) {
	if TreeFmtJson.Ext() != ".json" {
		t.Errorf("json ext = %q", TreeFmtJson.Ext())
	}
	if TreeFmtYaml.Ext() != ".yaml" {
		t.Errorf("yaml ext = %q", TreeFmtYaml.Ext())
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for unsupported tree format")
		}
	}()
	TreeFmt(42).Ext()
}

func TestParseOutputFmt(t *testing.T) {
	for _, name := range OutputFmtNames() {
		f, err := ParseOutputFmt(name)
		if err != nil {
			t.Fatalf("ParseOutputFmt(%q) error = %v", name, err)
		}
		if f.String() != name {
			t.Errorf("round trip %q -> %q", name, f.String())
		}
	}
	if _, err := ParseOutputFmt("markdown"); !errors.Is(err, ErrInvalidOutputFmt) {
		t.Errorf("expected ErrInvalidOutputFmt, got %v", err)
	}
}

func TestTreeFmt_UnmarshalText(t *testing.T) {
	var f TreeFmt
	if err := f.UnmarshalText([]byte("yaml")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if f != TreeFmtYaml {
		t.Errorf("got %v, want yaml", f)
	}
	if err := f.UnmarshalText([]byte("toml")); err == nil {
		t.Error("expected error for unknown format")
	}
}
