package convert

import (
	"strings"
	"testing"

	"imglink/config"
)

func TestExpandTemplate(t *testing.T) {
	values := newValues(config.OutputNameTemplateFieldName, "/x/Holiday", 12, 2.5, testNow)

	tests := []struct {
		tmpl    string
		want    string
		wantErr bool
	}{
		{"{{ .Folder }}", "Holiday", false},
		{"{{ .Context }}", "output_name_template", false},
		{"{{ .Folder }} ({{ .Count }} @ {{ .Width }}in)", "Holiday (12 @ 2.5in)", false},
		{"{{ .Folder | lower | replace \"day\" \"\" }}", "holi", false},
		{"{{ printf \"%03d\" .Count }}", "012", false},
		{"{{ .Date | replace \"-\" \"\" }}", "20240506", false},
		{"{{ .Missing }}", "", true},
		{"{{ .Folder ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.tmpl, func(t *testing.T) {
			got, err := expandTemplate(config.OutputNameTemplateFieldName, tt.tmpl, values)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expandTemplate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("expandTemplate() = %q, want %q", got, tt.want)
			}
		})
	}

	_, err := expandTemplate(config.OutputNameTemplateFieldName, "{{", values)
	if err == nil || !strings.Contains(err.Error(), "output_name_template") {
		t.Errorf("parse error %v must name the field", err)
	}
}
