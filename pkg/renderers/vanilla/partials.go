package vanilla

import (
	"fmt"
	"maps"
	"strings"

	"github.com/goliatone/go-formkit/pkg/field"
)

const (
	formTemplate = "templates/form.tmpl"

	// PartialPrefix prefixes theme partial keys: "forms.<widget>" for one
	// widget, or "forms.<family>" for input, select, radio and button.
	PartialPrefix = "forms."
)

var widgetFamilies = map[string]string{
	field.WidgetText:               "input",
	field.WidgetEmail:              "input",
	field.WidgetNumber:             "input",
	field.WidgetPassword:           "input",
	field.WidgetDate:               "input",
	field.WidgetFile:               "input",
	field.WidgetDropdown:           "select",
	field.WidgetSearchableDropdown: "select",
	field.WidgetRadio:              "radio",
	field.WidgetButton:             "button",
}

var familyPartials = map[string]string{
	"input":  "templates/partials/input.tmpl",
	"select": "templates/partials/select.tmpl",
	"radio":  "templates/partials/radio.tmpl",
	"button": "templates/partials/button.tmpl",
}

// partialFor resolves the template for widget: a theme entry for the widget,
// then a theme entry for its family, then the built-in family partial.
func partialFor(themed map[string]string, widget string) (string, error) {
	if p := themed[PartialPrefix+widget]; p != "" {
		return p, nil
	}
	family, ok := widgetFamilies[widget]
	if !ok {
		return "", fmt.Errorf("vanilla: no partial for widget %q", widget)
	}
	if p := themed[PartialPrefix+family]; p != "" {
		return p, nil
	}
	return familyPartials[family], nil
}

// themePartials keeps the forms.* entries of a theme's partial map.
func themePartials(partials map[string]string) map[string]string {
	out := make(map[string]string)
	maps.Copy(out, partials)
	maps.DeleteFunc(out, func(key, value string) bool {
		return !strings.HasPrefix(key, PartialPrefix) || strings.TrimSpace(value) == ""
	})
	return out
}

// inputType maps a widget onto the HTML input type.
func inputType(widget string) string {
	switch widget {
	case field.WidgetEmail, field.WidgetNumber, field.WidgetPassword, field.WidgetFile:
		return widget
	default:
		return "text"
	}
}

// displayValue never echoes secrets or file names back into the markup.
func displayValue(st field.State) string {
	switch st.Widget {
	case field.WidgetPassword, field.WidgetFile:
		return ""
	default:
		return st.Value
	}
}
