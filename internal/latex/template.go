package latex

import (
	"github.com/flosch/pongo2/v6"

	clierrors "github.com/salmonumbrella/tabtex/internal/errors"
)

var templateSet = pongo2.NewSet("tabtex", pongo2.DefaultLoader)

func init() {
	_ = pongo2.RegisterFilter("latex", filterLatex)
}

// filterLatex exposes Escape as {{ value|latex }}.
func filterLatex(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsSafeValue(Escape(in.String())), nil
}

type templateData struct {
	Location string
	Caption  string
	Label    string
	Align    string
	Header   string
	Rows     []string
	Columns  []string
}

// renderTemplate executes a user-supplied skeleton. Values are inserted
// without HTML escaping; the template may apply the latex filter itself.
func renderTemplate(opts Options, data templateData) (string, error) {
	src := "{% autoescape off %}" + opts.Template + "{% endautoescape %}"
	tpl, err := templateSet.FromString(src)
	if err != nil {
		return "", &clierrors.TemplateError{Name: opts.TemplateName, Err: err}
	}

	out, err := tpl.Execute(pongo2.Context{
		"location": data.Location,
		"caption":  data.Caption,
		"label":    data.Label,
		"align":    data.Align,
		"header":   data.Header,
		"hline":    hline,
		"rows":     data.Rows,
		"columns":  data.Columns,
		"data":     Body(data.Header, data.Rows),
	})
	if err != nil {
		return "", &clierrors.TemplateError{Name: opts.TemplateName, Err: err}
	}
	return out, nil
}
