// File: internal/browser/parser/shorthand_test.go
package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpandDeclaration(t *testing.T) {
	red := ColorOf(Color{R: 255, A: 255})
	tests := []struct {
		name     string
		property string
		raw      string
		want     []Declaration
	}{
		{"padding one value", "padding", "4px", []Declaration{
			d("padding-top", Px(4)), d("padding-right", Px(4)), d("padding-bottom", Px(4)), d("padding-left", Px(4)),
		}},
		{"margin two values", "margin", "1px auto", []Declaration{
			d("margin-top", Px(1)), d("margin-right", Keyword("auto")), d("margin-bottom", Px(1)), d("margin-left", Keyword("auto")),
		}},
		{"margin three values", "margin", "1px 2px 3px", []Declaration{
			d("margin-top", Px(1)), d("margin-right", Px(2)), d("margin-bottom", Px(3)), d("margin-left", Px(2)),
		}},
		{"border-width keywords", "border-width", "thin thick", []Declaration{
			d("border-top-width", Keyword("thin")), d("border-right-width", Keyword("thick")),
			d("border-bottom-width", Keyword("thin")), d("border-left-width", Keyword("thick")),
		}},
		{"too many values", "padding", "1px 2px 3px 4px 5px", nil},
		{"border", "border", "medium dashed red", []Declaration{
			d("border-top-width", Keyword("medium")), d("border-right-width", Keyword("medium")),
			d("border-bottom-width", Keyword("medium")), d("border-left-width", Keyword("medium")),
			d("border-style", Keyword("dashed")),
			d("border-color", red),
		}},
		{"border side", "border-left", "3px solid", []Declaration{d("border-left-width", Px(3))}},
		{"background picks the color", "background", "url(x.png) rgb(255, 0, 0) no-repeat", []Declaration{
			d("background-color", red),
		}},
		{"background without color", "background", "none", nil},
		{"longhand", "width", "50%", []Declaration{d("width", Percent(50))}},
		{"unmodelled multi-token value", "font-family", "Times New Roman", []Declaration{
			d("font-family", Keyword("times new roman")),
		}},
		{"empty", "width", "  ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandDeclaration(tt.property, tt.raw, false)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("expandDeclaration(%q, %q) mismatch (-want +got):\n%s", tt.property, tt.raw, diff)
			}
		})
	}
}

func TestExpandDeclarationKeepsImportance(t *testing.T) {
	for _, decl := range expandDeclaration("margin", "0", true) {
		if !decl.Important {
			t.Errorf("%s lost !important", decl.Property)
		}
	}
}
