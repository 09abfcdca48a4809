package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenHTML(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "headings and lists",
			html: `<html><head><title>CV</title></head><body><h2>Experience</h2><ul><li>Built APIs</li><li>Led team</li></ul><p>Jane<br>jane@x.com</p><script>var a;</script></body></html>`,
			want: "Experience\n- Built APIs\n- Led team\n\nJane\njane@x.com",
		},
		{
			name: "inline elements stay on the line",
			html: `<p>Senior <b>Engineer</b> at <a href="https://acme.example">Acme Corp</a></p>`,
			want: "Senior Engineer at Acme Corp",
		},
		{
			name: "entities and nbsp",
			html: `<p>R&amp;D&nbsp;Lead</p>`,
			want: "R&D Lead",
		},
		{
			name: "table cells",
			html: `<table><tr><td>Go</td><td>Python</td></tr></table>`,
			want: "Go Python",
		},
		{
			name: "styles dropped",
			html: `<style>p { color: red }</style><div>Skills</div>`,
			want: "Skills",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FlattenHTML(tt.html)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
