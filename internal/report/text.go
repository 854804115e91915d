package report

import (
	"fmt"
	"io"
	"strings"
)

// labelWidth is the column the field values are aligned to.
const labelWidth = 14

// errorField is the field RenderChunk uses for a payload that fails to decode.
const errorField = "Error"

type Field struct {
	Name  string
	Value string
}

func writeSection(w io.Writer, st Style, title string, fields []Field) error {
	var buf strings.Builder
	buf.WriteString("-- ")
	buf.WriteString(st.Title.Sprint(title))
	buf.WriteString("\n")
	for _, field := range fields {
		buf.WriteString(st.Label.Sprint(padRight(field.Name, labelWidth)))
		buf.WriteString(": ")
		value := st.Value
		if field.Name == errorField {
			value = st.Error
		}
		buf.WriteString(value.Sprint(field.Value))
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
	_, err := io.WriteString(w, buf.String())
	return err
}

func padRight(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return value + strings.Repeat(" ", width-len(value))
}

// FileTitle writes the heading printed before each file.
func FileTitle(w io.Writer, st Style, name string) error {
	_, err := fmt.Fprintf(w, "%s\n", st.Title.Sprint(name+":"))
	return err
}
