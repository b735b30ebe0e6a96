package combat

import (
	"bytes"
	"log/slog"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Battle messages are templates so the wording can reference either side and
// use the usual template helpers.
var (
	conquestNarrative = mustNarrative("conquest", "{{ .From }} conquered {{ .To }}")
	defenseNarrative  = mustNarrative("defense", "{{ .To }} defended successfully")
)

type narrativeData struct {
	From string
	To   string
}

func mustNarrative(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(sprig.TxtFuncMap()).Parse(text))
}

func narrate(tmpl *template.Template, from, to string) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, narrativeData{From: from, To: to}); err != nil {
		// Templates are static; execution can only fail if one is edited
		// badly. Fall back to the template name.
		slog.Warn("rendering battle narrative", "template", tmpl.Name(), "error", err)
		return tmpl.Name()
	}
	return buf.String()
}
