package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

const swatchBlock = "██"

func (e *selectionEditorImpl) Render(w io.Writer) error {
	out := termenv.NewOutput(w, termenv.WithProfile(e.profile))
	var b strings.Builder

	rows := e.Parts()
	fmt.Fprintln(&b, out.String("Parts").Bold())
	width := 0
	for _, r := range rows {
		width = max(width, len(r.Name))
	}
	for i, r := range rows {
		marker := " "
		if r.Selected {
			marker = ">"
		}
		line := fmt.Sprintf("%s %d %-*s  %s", marker, i+1, width, r.Name, r.Material)
		if r.Selected {
			fmt.Fprintln(&b, out.String(line).Reverse())
		} else {
			fmt.Fprintln(&b, line)
		}
	}

	picker := e.MaterialPicker()
	if picker.Disabled {
		fmt.Fprintln(&b, out.String("Material: select a part to choose its material").Faint())
	} else {
		names := make([]string, 0, len(picker.Options))
		for _, o := range picker.Options {
			name := o.Name
			if o.ID == picker.Value {
				name = "[" + name + "]"
			}
			if e.profile != termenv.Ascii {
				name = out.String(swatchBlock).Foreground(e.profile.Color(o.Hex)).String() + " " + name
			}
			names = append(names, name)
		}
		fmt.Fprintf(&b, "Material: %s\n", strings.Join(names, "  "))
	}

	if query, searching := e.Search(); searching {
		best := "no match"
		if matches := e.FilterMaterials(query); len(matches) > 0 {
			best = matches[0].Name
		}
		fmt.Fprintf(&b, "Search: %s_  -> %s\n", query, best)
	}

	if err := e.SaveError(); err != nil {
		fmt.Fprintln(&b, out.String("Save failed: "+err.Error()).Bold())
	}

	_, err := io.WriteString(out, b.String())
	return err
}
